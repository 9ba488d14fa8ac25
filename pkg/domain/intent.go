package domain

import (
	"encoding/json"
	"strings"
)

// Intent is the closed set of customer intents the oracle may report.
// The zero value (IntentNone) means no intent has been recorded yet.
type Intent int

const (
	IntentNone Intent = iota
	IntentOrderDrink
	IntentAskQuestion
	IntentModifyOrder
	IntentCheckout
	IntentAddToCart
	// IntentUnrecognized marks a label the oracle returned that is not in the set.
	IntentUnrecognized
)

var intentNames = map[Intent]string{
	IntentNone:         "",
	IntentOrderDrink:   "order_drink",
	IntentAskQuestion:  "ask_question",
	IntentModifyOrder:  "modify_order",
	IntentCheckout:     "checkout",
	IntentAddToCart:    "add_to_cart",
	IntentUnrecognized: "unrecognized",
}

// ParseIntent maps an oracle label onto an Intent.
// Empty labels yield IntentNone, unknown labels IntentUnrecognized.
func ParseIntent(label string) Intent {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return IntentNone
	}
	for intent, name := range intentNames {
		if intent != IntentNone && name == label {
			return intent
		}
	}
	return IntentUnrecognized
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unrecognized"
}

// IsSet reports whether an intent has been recorded.
func (i Intent) IsSet() bool {
	return i != IntentNone
}

// MarshalJSON encodes the intent label, or null when unset.
func (i Intent) MarshalJSON() ([]byte, error) {
	if i == IntentNone {
		return []byte("null"), nil
	}
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an intent label (or null).
func (i *Intent) UnmarshalJSON(data []byte) error {
	var label *string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	if label == nil {
		*i = IntentNone
		return nil
	}
	*i = ParseIntent(*label)
	return nil
}
