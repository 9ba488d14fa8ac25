package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/adapters/memory"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s1", 0)
	s.Order = domain.WorkingOrder{Customizations: []string{"mleko"}}
	require.NoError(t, store.Save(ctx, "s1", &s))

	s.Order.Customizations[0] = "tampered"

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mleko"}, loaded.Order.Customizations)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		s := domain.NewSession(id, 0)
		require.NoError(t, store.Save(ctx, id, &s))
	}
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
