package domain_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLog_BoundedAndOrdered(t *testing.T) {
	log := domain.NewActivityLog(3)
	for i := 1; i <= 5; i++ {
		log = log.Append(fmt.Sprintf("e%d", i))
	}
	assert.Equal(t, 3, log.Len())
	assert.Equal(t, []string{"e3", "e4", "e5"}, log.Entries())

	cleared := log.Cleared()
	assert.Zero(t, cleared.Len())
	assert.Equal(t, 3, cleared.Capacity())
	assert.Equal(t, 3, log.Len(), "Cleared does not touch the receiver")
}

func TestActivityLog_AppendIsPure(t *testing.T) {
	a := domain.NewActivityLog(2).Append("x")
	b := a.Append("y")
	assert.Equal(t, []string{"x"}, a.Entries())
	assert.Equal(t, []string{"x", "y"}, b.Entries())
}

func TestActivityLog_MapKeepsOrderAndReceiver(t *testing.T) {
	log := domain.NewActivityLog(3).Append("a").Append("b").Append("c").Append("d")
	upper := log.Map(func(e string) string { return e + "!" })
	assert.Equal(t, []string{"b!", "c!", "d!"}, upper.Entries())
	assert.Equal(t, []string{"b", "c", "d"}, log.Entries())
	assert.Equal(t, 3, upper.Capacity())
}

func TestActivityLog_JSONRoundTripKeepsCapacity(t *testing.T) {
	log := domain.NewActivityLog(2).Append("a").Append("b").Append("c")
	data, err := json.Marshal(log)
	require.NoError(t, err)
	assert.JSONEq(t, `{"capacity":2,"entries":["b","c"]}`, string(data))

	var back domain.ActivityLog
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 2, back.Capacity())
	assert.Equal(t, []string{"b", "c"}, back.Entries())
}

func TestSession_ResetKeepsMetrics(t *testing.T) {
	s := domain.NewSession("s1", 16)
	s = s.Hear("latte").Say("ok").Audit("entry")
	s.Cart = s.Cart.Add(domain.CartItem{Drink: "latte", Size: domain.SizeLarge, Price: domain.PLN(17)})
	s.Order = domain.WorkingOrder{Drink: "espresso"}
	s.Intent = domain.IntentOrderDrink
	s.Valid = false
	s.Metrics = domain.Metrics{OrdersCompleted: 2, TotalRevenue: domain.PLN(40)}

	r := s.Reset()
	assert.Equal(t, "s1", r.ID)
	assert.Equal(t, s.Metrics, r.Metrics)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Messages)
	assert.True(t, r.Cart.IsEmpty())
	assert.True(t, r.Order.IsEmpty())
	assert.Equal(t, domain.IntentNone, r.Intent)
	assert.Zero(t, r.Log.Len())
	assert.Equal(t, 16, r.Log.Capacity())
}

func TestSession_LastReply(t *testing.T) {
	s := domain.NewSession("s1", 0)
	_, ok := s.LastReply()
	assert.False(t, ok)

	s = s.Say("pierwsza").Hear("pytanie")
	reply, ok := s.LastReply()
	assert.True(t, ok)
	assert.Equal(t, "pierwsza", reply)
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s := domain.NewSession("s1", 4).Hear("latte L").Audit("koszyk")
	s.Intent = domain.IntentAddToCart
	s.Cart = s.Cart.Add(domain.CartItem{Drink: "latte", Size: domain.SizeLarge, Customizations: []string{}, Substitutions: []string{}, Price: domain.PLN(17)})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back domain.Session
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.Intent, back.Intent)
	assert.Equal(t, s.Cart, back.Cart)
	assert.Equal(t, s.Messages, back.Messages)
	assert.Equal(t, s.Log.Entries(), back.Log.Entries())
}

func TestReport_Text(t *testing.T) {
	s := domain.NewSession("s1", 0).Audit("Koszyk: 1 przedmiotów, 8 zł")
	s.Metrics = domain.Metrics{OrdersCompleted: 3, TotalRevenue: domain.PLN(28)}

	text := s.Report().Text()
	assert.Contains(t, text, "Orders completed: 3")
	assert.Contains(t, text, "Total revenue: 28.0")
	assert.Contains(t, text, "Koszyk: 1 przedmiotów, 8 zł")
}

func TestChainHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnCheckout: func(context.Context, *domain.CheckoutEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{OnCheckout: func(context.Context, *domain.CheckoutEvent) { calls = append(calls, "b") }}

	hooks := domain.Chain(a, domain.LifecycleHooks{}, b)
	hooks.OnCheckout(context.Background(), &domain.CheckoutEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.NotPanics(t, func() { hooks.OnCartAdd(context.Background(), &domain.CartEvent{}) })
}
