package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/kawiarnia/pkg/adapters/memory"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/ports"
	"github.com/aretw0/kawiarnia/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, sessionID, sess)
}

func (s SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, sessionID)
}

func TestManager_UpdateSerializesReadModifyWrite(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	const writers = 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(s domain.Session) (domain.Session, error) {
				s.Metrics = s.Metrics.Record(domain.PLN(1))
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, writers, s.Metrics.OrdersCompleted, "no update may be lost")
	assert.Equal(t, domain.PLN(writers), s.Metrics.TotalRevenue)
}

func TestManager_UpdateErrorStoresNothing(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := manager.Update(ctx, "s1", func(s domain.Session) (domain.Session, error) {
		return s, boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ModifyRequiresSession(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	called := false
	_, err := manager.Modify(ctx, "ghost", func(s domain.Session) (domain.Session, error) {
		called = true
		return s, nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, called)

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = manager.LoadOrStart(ctx, "s1")
	require.NoError(t, err)
	s, err := manager.Modify(ctx, "s1", func(s domain.Session) (domain.Session, error) {
		s.Metrics.OrdersCompleted = 3
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Metrics.OrdersCompleted)
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()}, session.WithLogCapacity(7))
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, s)
		}()
	}
	wg.Wait()

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.True(t, s.Valid)
	assert.Equal(t, 7, s.Log.Capacity())

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

type recordingLocker struct {
	mu     sync.Mutex
	locked []string
	ttl    time.Duration
	fail   error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.ttl = ttl
	l.mu.Unlock()
	return func(context.Context) error { return nil }, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(5*time.Second))

	_, err := manager.LoadOrStart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, locker.locked)
	assert.Equal(t, 5*time.Second, locker.ttl)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := &recordingLocker{fail: errors.New("redis down")}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	called := false
	err := manager.WithLock(context.Background(), "s1", func(context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
