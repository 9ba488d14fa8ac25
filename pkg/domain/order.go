package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Size is a drink size. The empty Size means "not chosen yet".
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the sizes in menu order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize accepts "S", "M" or "L" in any case.
func ParseSize(s string) (Size, error) {
	switch Size(strings.ToUpper(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, nil
	case SizeMedium:
		return SizeMedium, nil
	case SizeLarge:
		return SizeLarge, nil
	}
	return "", fmt.Errorf("invalid size %q", s)
}

// WorkingOrder is the order being assembled across turns.
// Customizations and Substitutions behave as sets that keep first-insertion
// order. Set members compare case-insensitively and keep their first spelling.
type WorkingOrder struct {
	Drink          string
	Size           Size
	Customizations []string
	Substitutions  []string
}

// OrderUpdate carries the slots reported by the oracle for one turn.
// Nil pointers mean "not mentioned".
type OrderUpdate struct {
	Drink          *string
	Size           *Size
	Customizations []string
	Substitutions  []string
}

// Merge applies an update field by field. Present scalar slots overwrite,
// set slots only grow.
func (o WorkingOrder) Merge(u OrderUpdate) WorkingOrder {
	next := o.Clone()
	if u.Drink != nil && strings.TrimSpace(*u.Drink) != "" {
		next.Drink = strings.TrimSpace(*u.Drink)
	}
	if u.Size != nil && *u.Size != "" {
		next.Size = *u.Size
	}
	next.Customizations = union(next.Customizations, u.Customizations)
	next.Substitutions = union(next.Substitutions, u.Substitutions)
	return next
}

// IsEmpty reports whether no slot has been filled.
func (o WorkingOrder) IsEmpty() bool {
	return o.Drink == "" && o.Size == "" && len(o.Customizations) == 0 && len(o.Substitutions) == 0
}

// Missing returns the names of the required slots that are still empty.
func (o WorkingOrder) Missing() []string {
	var missing []string
	if o.Drink == "" {
		missing = append(missing, "drink_type")
	}
	if o.Size == "" {
		missing = append(missing, "size")
	}
	return missing
}

// Clone returns a copy that shares no slices with o.
func (o WorkingOrder) Clone() WorkingOrder {
	return WorkingOrder{
		Drink:          o.Drink,
		Size:           o.Size,
		Customizations: cloneStrings(o.Customizations),
		Substitutions:  cloneStrings(o.Substitutions),
	}
}

type workingOrderJSON struct {
	Drink          *string  `json:"drink_type"`
	Size           *Size    `json:"size"`
	Customizations []string `json:"customizations"`
	Substitutions  []string `json:"substitutions"`
}

// MarshalJSON writes unfilled scalar slots as null and sets as arrays, the
// same shape the oracle sees in its prompt.
func (o WorkingOrder) MarshalJSON() ([]byte, error) {
	out := workingOrderJSON{
		Customizations: nonNil(o.Customizations),
		Substitutions:  nonNil(o.Substitutions),
	}
	if o.Drink != "" {
		d := o.Drink
		out.Drink = &d
	}
	if o.Size != "" {
		s := o.Size
		out.Size = &s
	}
	return json.Marshal(out)
}

func (o *WorkingOrder) UnmarshalJSON(data []byte) error {
	var in workingOrderJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*o = WorkingOrder{
		Customizations: in.Customizations,
		Substitutions:  in.Substitutions,
	}
	if in.Drink != nil {
		o.Drink = *in.Drink
	}
	if in.Size != nil {
		o.Size = *in.Size
	}
	return nil
}

func union(base, extra []string) []string {
	for _, item := range extra {
		item = strings.TrimSpace(item)
		if item == "" || contains(base, item) {
			continue
		}
		base = append(base, item)
	}
	return base
}

func contains(list []string, item string) bool {
	key := setKey(item)
	for _, v := range list {
		if setKey(v) == key {
			return true
		}
	}
	return false
}

// setKey matches the catalog's name lookup, so one addon is never charged twice.
func setKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
