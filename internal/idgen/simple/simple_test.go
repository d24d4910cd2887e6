package simple

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GetID(t *testing.T) {
	g := New()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		id, err := g.GetID(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestGenerator_GetIDIsUnique(t *testing.T) {
	g := New()
	ctx := context.Background()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = map[int]bool{}
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			id, err := g.GetID(ctx)
			assert.NoError(t, err)

			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().GetID(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
