package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, 8)
		session = session.Hear("Poproszę latte").Say("Jaki rozmiar?").Audit("validate_user_input(latte): is_valid=true")
		session.Intent = domain.IntentOrderDrink
		session.Order = domain.WorkingOrder{Drink: "latte", Customizations: []string{"mleko"}}
		session.Cart = session.Cart.Add(domain.CartItem{
			Drink: "espresso", Size: domain.SizeSmall,
			Customizations: []string{}, Substitutions: []string{},
			Price: domain.PLN(8),
		})
		session.Metrics = domain.Metrics{OrdersCompleted: 2, TotalRevenue: domain.PLN(28.5)}

		require.NoError(t, store.Save(ctx, sessionID, &session), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, session.Valid, loaded.Valid)
		assert.Equal(t, session.Intent, loaded.Intent)
		assert.Equal(t, session.Order, loaded.Order)
		assert.Equal(t, session.Cart, loaded.Cart)
		assert.Equal(t, session.Metrics, loaded.Metrics)
		assert.Equal(t, session.Messages, loaded.Messages)
		assert.Equal(t, session.Log.Entries(), loaded.Log.Entries())
		assert.Equal(t, 8, loaded.Log.Capacity())
	})

	t.Run("Loaded Copies Are Independent", func(t *testing.T) {
		session := domain.NewSession(sessionID, 0).Hear("latte")
		require.NoError(t, store.Save(ctx, sessionID, &session))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Messages[0].Text = "tampered"

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "latte", second.Messages[0].Text)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		session := domain.NewSession(sessionID, 0)
		require.NoError(t, store.Save(ctx, sessionID, &session))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		s1, s2 := domain.NewSession(id1, 0), domain.NewSession(id2, 0)
		require.NoError(t, store.Save(ctx, id1, &s1))
		require.NoError(t, store.Save(ctx, id2, &s2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
