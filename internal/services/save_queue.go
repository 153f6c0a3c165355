package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/storeforge/api/internal/domain"
)

// SaveFunc persists a section list for a store.
type SaveFunc func(ctx context.Context, storeID string, sections []domain.SectionInstance) error

// SaveQueue serialises section saves per store. At most one save runs per
// store at a time and at most one is held pending behind it; enqueueing while
// a save is already pending replaces the pending snapshot, so a burst of
// edits collapses to the in-flight write plus the latest state.
type SaveQueue struct {
	save   SaveFunc
	logger func(ctx context.Context, event string, fields map[string]any)

	mu     sync.Mutex
	states map[string]*saveState
}

type saveState struct {
	running bool
	pending []domain.SectionInstance
	hasPend bool
	waiters []chan struct{}
}

// SaveQueueDeps carries the dependencies for NewSaveQueue.
type SaveQueueDeps struct {
	Save   SaveFunc
	Logger func(ctx context.Context, event string, fields map[string]any)
}

// NewSaveQueue builds a save queue around the given persistence function.
func NewSaveQueue(deps SaveQueueDeps) (*SaveQueue, error) {
	if deps.Save == nil {
		return nil, fmt.Errorf("save queue: save function is required")
	}
	if deps.Logger == nil {
		deps.Logger = func(context.Context, string, map[string]any) {}
	}
	return &SaveQueue{
		save:   deps.Save,
		logger: deps.Logger,
		states: make(map[string]*saveState),
	}, nil
}

// Enqueue schedules persistence of the given snapshot. The snapshot is
// cloned, so callers may keep mutating their working list. Saves run on a
// context detached from the request so an aborted request does not cancel
// a write already committed to.
func (q *SaveQueue) Enqueue(ctx context.Context, storeID string, sections []domain.SectionInstance) {
	snapshot := domain.CloneSections(sections)
	detached := context.WithoutCancel(ctx)

	q.mu.Lock()
	state, ok := q.states[storeID]
	if !ok {
		state = &saveState{}
		q.states[storeID] = state
	}
	if state.running {
		if state.hasPend {
			q.logger(ctx, "save.superseded", map[string]any{"store_id": storeID})
		}
		state.pending = snapshot
		state.hasPend = true
		q.mu.Unlock()
		return
	}
	state.running = true
	q.mu.Unlock()

	go q.run(detached, storeID, snapshot)
}

func (q *SaveQueue) run(ctx context.Context, storeID string, snapshot []domain.SectionInstance) {
	for {
		if err := q.save(ctx, storeID, snapshot); err != nil {
			q.logger(ctx, "save.failed", map[string]any{
				"store_id": storeID,
				"error":    err.Error(),
			})
		} else {
			q.logger(ctx, "save.completed", map[string]any{
				"store_id": storeID,
				"sections": len(snapshot),
			})
		}

		q.mu.Lock()
		state := q.states[storeID]
		if state.hasPend {
			snapshot = state.pending
			state.pending = nil
			state.hasPend = false
			q.mu.Unlock()
			continue
		}
		state.running = false
		waiters := state.waiters
		state.waiters = nil
		q.mu.Unlock()

		for _, w := range waiters {
			close(w)
		}
		return
	}
}

// Flush blocks until no save is running or pending for the store, or the
// context is done.
func (q *SaveQueue) Flush(ctx context.Context, storeID string) error {
	q.mu.Lock()
	state, ok := q.states[storeID]
	if !ok || !state.running {
		q.mu.Unlock()
		return nil
	}
	done := make(chan struct{})
	state.waiters = append(state.waiters, done)
	q.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
