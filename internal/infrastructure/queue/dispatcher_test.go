package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type recordingRepo struct {
	ports.BootcampRepository

	mu    sync.Mutex
	calls []string
}

func (r *recordingRepo) RefreshAverages(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	return nil
}

func TestDispatcher_RefreshesEveryQueuedBootcamp(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start()

	queued := d.Repository()
	ids := []string{"a", "b", "c", "a", "d", "b"}
	for _, id := range ids {
		require.NoError(t, queued.RefreshAverages(context.Background(), id))
	}
	d.Stop()

	assert.ElementsMatch(t, ids, repo.calls)
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(5, &recordingRepo{}, zerolog.Nop())
	for _, id := range []string{"65a1f0", "65a1f1", "x"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, d.shardIndex(id))
		}
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 5)
	}
}

func TestDispatcher_EnqueueHonoursContext(t *testing.T) {
	d := NewDispatcher(1, &recordingRepo{}, zerolog.Nop())
	// Not started: fill the single buffer so the next send would block.
	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, d.Enqueue(context.Background(), "a"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Enqueue(ctx, "a"), context.Canceled)
}
