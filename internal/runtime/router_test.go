package runtime_test

import (
	"testing"

	"github.com/aretw0/kawiarnia/internal/runtime"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRouteValidity(t *testing.T) {
	ok, entry := runtime.RouteValidity(true)
	assert.True(t, ok)
	assert.Equal(t, "process_user_input_route: process_user_input", entry)

	ok, entry = runtime.RouteValidity(false)
	assert.False(t, ok)
	assert.Equal(t, "process_user_input_route: forbidden_input", entry)
}

func TestRouteIntent(t *testing.T) {
	tests := []struct {
		intent domain.Intent
		route  domain.Route
		entry  string
	}{
		{domain.IntentAddToCart, domain.RouteAddToCart, "add_to_cart_route(add_to_cart): add_to_cart"},
		{domain.IntentCheckout, domain.RouteCheckout, "add_to_cart_route(checkout): checkout"},
		{domain.IntentOrderDrink, domain.RouteContinue, "add_to_cart_route(order_drink): continue"},
		{domain.IntentAskQuestion, domain.RouteContinue, "add_to_cart_route(ask_question): continue"},
		{domain.IntentModifyOrder, domain.RouteContinue, "add_to_cart_route(modify_order): continue"},
		{domain.IntentUnrecognized, domain.RouteContinue, "add_to_cart_route(unrecognized): continue"},
	}
	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			route, entry := runtime.RouteIntent(tt.intent)
			assert.Equal(t, tt.route, route)
			assert.Equal(t, tt.entry, entry)
		})
	}
}

func TestIsCheckoutShortcut(t *testing.T) {
	kw := runtime.DefaultCheckoutKeywords
	assert.True(t, runtime.IsCheckoutShortcut("CHECKOUT proszę", kw))
	assert.True(t, runtime.IsCheckoutShortcut("Finalizuj zamówienie", kw))
	assert.False(t, runtime.IsCheckoutShortcut("podsumuj", kw))
	assert.False(t, runtime.IsCheckoutShortcut("checkout", nil))
}
