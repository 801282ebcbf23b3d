package reorder

import (
	"context"

	"github.com/rs/zerolog/log"
	"nexus/internal/platform/metrics"
)

type Coordinator struct {
	store   Store
	metrics *metrics.Metrics
}

func NewCoordinator(store Store, m *metrics.Metrics) *Coordinator {
	return &Coordinator{store: store, metrics: m}
}

// Reorder moves the item at index from to index to and persists a dense
// 0..N-1 order for the collection. Only rows whose order changed are written.
func (c *Coordinator) Reorder(ctx context.Context, col Collection, from, to int) ([]Position, error) {
	next, err := c.reorder(ctx, col, from, to)
	c.metrics.Reordered(string(col), err)
	return next, err
}

func (c *Coordinator) reorder(ctx context.Context, col Collection, from, to int) ([]Position, error) {
	current, err := c.store.Sequence(ctx, col)
	if err != nil {
		return nil, err
	}

	moved, err := Move(ids(current), from, to)
	if err != nil {
		return nil, err
	}

	return c.persist(ctx, col, current, Assign(moved))
}

// Normalize rewrites the collection's orders as 0..N-1 in display order,
// closing gaps left by deletes.
func (c *Coordinator) Normalize(ctx context.Context, col Collection) ([]Position, error) {
	current, err := c.store.Sequence(ctx, col)
	if err != nil {
		return nil, err
	}
	return c.persist(ctx, col, current, Assign(ids(current)))
}

// Remove deletes one entry and renumbers the remainder atomically. It reports
// whether the entry existed.
func (c *Coordinator) Remove(ctx context.Context, col Collection, id string) (bool, error) {
	removed, err := c.store.Remove(ctx, col, id)
	c.metrics.Reordered(string(col), err)
	if err != nil {
		return false, err
	}
	if removed {
		log.Info().Str("collection", string(col)).Str("id", id).Msg("collection entry removed")
	}
	return removed, nil
}

func (c *Coordinator) persist(ctx context.Context, col Collection, current, next []Position) ([]Position, error) {
	diff := changed(current, next)
	if len(diff) == 0 {
		return next, nil
	}

	if err := c.store.Persist(ctx, col, diff); err != nil {
		return nil, err
	}

	log.Info().
		Str("collection", string(col)).
		Int("items", len(next)).
		Int("updated", len(diff)).
		Msg("collection order persisted")
	return next, nil
}
