package simpletxmanager

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_SerializesCallbacks(t *testing.T) {
	m := NewTransactionManager()

	var (
		active    int
		maxActive int
		counter   sync.Mutex
		wg        sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.DoSerializable(context.Background(), func(ctx context.Context) error {
				counter.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				counter.Unlock()

				counter.Lock()
				active--
				counter.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestTransactionManager_NestedCallDoesNotDeadlock(t *testing.T) {
	m := NewTransactionManager()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
}

func TestTransactionManager_CancelledContext(t *testing.T) {
	m := NewTransactionManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.DoSerializable(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
