package domain

import (
	"fmt"
	"strings"
)

// ActivityReport is the structured activity log exposed to front ends.
type ActivityReport struct {
	Metrics      Metrics      `json:"metrics"`
	Log          []string     `json:"conversation_log"`
	Cart         CartSummary  `json:"cart_summary"`
	CurrentState CurrentState `json:"current_state"`
}

// CurrentState is the in-progress part of a session.
type CurrentState struct {
	Intent Intent       `json:"intent"`
	Order  WorkingOrder `json:"current_order"`
}

// Report builds the activity report of a session.
func (s Session) Report() ActivityReport {
	return ActivityReport{
		Metrics: s.Metrics,
		Log:     s.Log.Entries(),
		Cart:    s.Cart.Summary(),
		CurrentState: CurrentState{
			Intent: s.Intent,
			Order:  s.Order.Clone(),
		},
	}
}

// Text renders the report for terminals and plain-text log panels.
func (r ActivityReport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders completed: %d\n", r.Metrics.OrdersCompleted)
	fmt.Fprintf(&b, "Total revenue: %.1f\n", r.Metrics.TotalRevenue.Zloty())
	fmt.Fprintf(&b, "Cart: %d items, %s\n", r.Cart.ItemCount, r.Cart.Total)
	if r.CurrentState.Intent.IsSet() {
		fmt.Fprintf(&b, "Intent: %s\n", r.CurrentState.Intent)
	}
	if !r.CurrentState.Order.IsEmpty() {
		o := r.CurrentState.Order
		fmt.Fprintf(&b, "Current order: %s %s %v %v\n", o.Drink, o.Size, o.Customizations, o.Substitutions)
	}
	if len(r.Log) > 0 {
		b.WriteString("\n")
		for _, entry := range r.Log {
			b.WriteString(entry)
			b.WriteString("\n")
		}
	}
	return b.String()
}
