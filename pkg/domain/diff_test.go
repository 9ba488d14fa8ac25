package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	valid := true
	invalid := false
	order := IntentOrderDrink

	base := NewSession("sess-1", 8)
	base = base.Hear("Dzień dobry")

	withOrder := base
	withOrder.Intent = IntentOrderDrink
	withOrder.Order = WorkingOrder{Drink: "latte"}
	withOrder = withOrder.Say("Jaki rozmiar?")

	rejected := base
	rejected.Valid = false

	tests := []struct {
		name     string
		old      *Session
		new      *Session
		wantDiff *SessionDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  &base,
			wantDiff: &SessionDiff{
				SessionID: "sess-1",
				Valid:     &valid,
				Intent:    &[]Intent{IntentNone}[0],
				Order:     &WorkingOrder{},
				Cart:      &CartSummary{Items: []CartItem{}},
				Metrics:   &Metrics{},
				Messages:  []Message{{Role: RoleUser, Text: "Dzień dobry"}},
			},
		},
		{
			name:     "No Changes",
			old:      &base,
			new:      &base,
			wantDiff: nil,
		},
		{
			name: "Order Update Appends Reply",
			old:  &base,
			new:  &withOrder,
			wantDiff: &SessionDiff{
				SessionID: "sess-1",
				Intent:    &order,
				Order:     &WorkingOrder{Drink: "latte"},
				Messages:  []Message{{Role: RoleAssistant, Text: "Jaki rozmiar?"}},
			},
		},
		{
			name: "Validity Flip",
			old:  &base,
			new:  &rejected,
			wantDiff: &SessionDiff{
				SessionID: "sess-1",
				Valid:     &invalid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Diff() = nil, want %+v", tt.wantDiff)
			}
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() mismatch\n got: %s\nwant: %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_ResetSendsWholeHistory(t *testing.T) {
	old := NewSession("sess-1", 8).Hear("a").Say("b").Hear("c")
	reset := old.Reset().Say("Witaj ponownie")

	diff := Diff(&old, &reset)
	if diff == nil {
		t.Fatal("expected a diff after reset")
	}
	if len(diff.Messages) != 1 || diff.Messages[0].Text != "Witaj ponownie" {
		t.Errorf("expected the full (shorter) history, got %+v", diff.Messages)
	}
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	old := NewSession("sess-1", 8)
	next := old
	next.Cart = next.Cart.Add(CartItem{Drink: "espresso", Size: SizeSmall, Price: PLN(8)})

	data, err := json.Marshal(Diff(&old, &next))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"cart"`) {
		t.Errorf("expected cart in %s", s)
	}
	if strings.Contains(s, `"is_valid"`) || strings.Contains(s, `"messages"`) {
		t.Errorf("unexpected unchanged fields in %s", s)
	}
}
