package observability_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTurnEnd(ctx, &domain.TurnEvent{Route: domain.RouteContinue, Duration: 10 * time.Millisecond})
	hooks.OnTurnEnd(ctx, &domain.TurnEvent{Route: domain.RouteContinue})
	hooks.OnTurnEnd(ctx, &domain.TurnEvent{Route: domain.RouteCheckout})
	hooks.OnOracleCall(ctx, &domain.OracleEvent{Shape: "turn"})
	hooks.OnOracleCall(ctx, &domain.OracleEvent{Shape: "turn", Err: errors.New("boom")})
	hooks.OnCartAdd(ctx, &domain.CartEvent{Item: domain.CartItem{Drink: "latte"}})
	hooks.OnCheckout(ctx, &domain.CheckoutEvent{Items: 2, Total: domain.PLN(26)})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Turns.WithLabelValues("continue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("checkout")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OracleCalls.WithLabelValues("turn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OracleFailures.WithLabelValues("turn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartAdds.WithLabelValues("latte")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCompleted))
	assert.Equal(t, 26.0, testutil.ToFloat64(m.Revenue))
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetrics_Handler(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	m.OrdersCompleted.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kawiarnia_orders_completed_total 1")
}
