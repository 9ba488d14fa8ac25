package domain

import "encoding/json"

// DefaultActivityLogCapacity bounds the activity log when no capacity is given.
const DefaultActivityLogCapacity = 512

// ActivityLog is an append-only audit trail bounded to a fixed capacity.
// When full, the oldest entry is dropped. Entries come back oldest first.
type ActivityLog struct {
	capacity int
	entries  []string
	start    int
	size     int
}

// NewActivityLog creates a log holding at most capacity entries.
func NewActivityLog(capacity int) ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityLogCapacity
	}
	return ActivityLog{capacity: capacity}
}

// Append returns a log with entry added at the end.
func (l ActivityLog) Append(entry string) ActivityLog {
	next := l.Clone()
	if next.capacity <= 0 {
		next.capacity = DefaultActivityLogCapacity
	}
	if next.entries == nil {
		next.entries = make([]string, next.capacity)
	}
	if next.size < next.capacity {
		next.entries[(next.start+next.size)%next.capacity] = entry
		next.size++
		return next
	}
	next.entries[next.start] = entry
	next.start = (next.start + 1) % next.capacity
	return next
}

// Entries returns the retained entries in insertion order.
func (l ActivityLog) Entries() []string {
	out := make([]string, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.entries[(l.start+i)%len(l.entries)])
	}
	return out
}

// Len returns the number of retained entries.
func (l ActivityLog) Len() int { return l.size }

// Capacity returns the maximum number of retained entries.
func (l ActivityLog) Capacity() int { return l.capacity }

// Cleared returns an empty log with the same capacity.
func (l ActivityLog) Cleared() ActivityLog {
	return NewActivityLog(l.capacity)
}

// Clone returns a copy that shares no storage with l.
func (l ActivityLog) Clone() ActivityLog {
	next := l
	if l.entries != nil {
		next.entries = make([]string, len(l.entries))
		copy(next.entries, l.entries)
	}
	return next
}

// Map returns a log with fn applied to every entry, order and capacity kept.
func (l ActivityLog) Map(fn func(string) string) ActivityLog {
	next := l.Clone()
	for i := 0; i < next.size; i++ {
		j := (next.start + i) % len(next.entries)
		next.entries[j] = fn(next.entries[j])
	}
	return next
}

type activityLogJSON struct {
	Capacity int      `json:"capacity"`
	Entries  []string `json:"entries"`
}

func (l ActivityLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(activityLogJSON{Capacity: l.capacity, Entries: l.Entries()})
}

func (l *ActivityLog) UnmarshalJSON(data []byte) error {
	var in activityLogJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	next := NewActivityLog(in.Capacity)
	for _, e := range in.Entries {
		next = next.Append(e)
	}
	*l = next
	return nil
}
