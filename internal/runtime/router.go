package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// RouteValidity is the first gate. It reports whether the turn proceeds to
// order processing, plus the log entry describing the decision.
func RouteValidity(valid bool) (bool, string) {
	if valid {
		return true, "process_user_input_route: process_user_input"
	}
	return false, "process_user_input_route: forbidden_input"
}

// RouteIntent maps the session intent to the stage that finishes the turn.
func RouteIntent(intent domain.Intent) (domain.Route, string) {
	var route domain.Route
	switch intent {
	case domain.IntentAddToCart:
		route = domain.RouteAddToCart
	case domain.IntentCheckout:
		route = domain.RouteCheckout
	case domain.IntentNone, domain.IntentOrderDrink, domain.IntentAskQuestion,
		domain.IntentModifyOrder, domain.IntentUnrecognized:
		route = domain.RouteContinue
	default:
		route = domain.RouteContinue
	}
	return route, fmt.Sprintf("add_to_cart_route(%s): %s", intent, routeLabel(route))
}

func routeLabel(r domain.Route) string {
	if r == domain.RouteContinue {
		return "continue"
	}
	return string(r)
}

// IsCheckoutShortcut reports whether message contains any keyword,
// ignoring case.
func IsCheckoutShortcut(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
