// Package triggers keeps the two denormalized recipe counters consistent with
// the recipes collection, driven by document-change events. Counter updates
// and the recipe writes that caused them are deliberately not transactional;
// the counters converge because every adjustment is a relative increment.
package triggers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firerecipes/backend/internal/models"
	"github.com/firerecipes/backend/internal/store"
)

// CounterMaintainer owns the counter documents. Nothing else writes them.
type CounterMaintainer struct {
	counters store.CounterStore
	images   store.ImageStore
}

func NewCounterMaintainer(counters store.CounterStore, images store.ImageStore) *CounterMaintainer {
	return &CounterMaintainer{counters: counters, images: images}
}

// RecipeCreated bumps the "all" counter, and "published" too when the new
// recipe is already published. Missing counter documents start at 1.
func (m *CounterMaintainer) RecipeCreated(ctx context.Context, r models.Recipe) error {
	var errs []error
	if err := m.counters.Adjust(ctx, store.CounterAll, 1, 1); err != nil {
		errs = append(errs, fmt.Errorf("increment %s: %w", store.CounterAll, err))
	}
	if r.IsPublished {
		if err := m.counters.Adjust(ctx, store.CounterPublished, 1, 1); err != nil {
			errs = append(errs, fmt.Errorf("increment %s: %w", store.CounterPublished, err))
		}
	}
	return errors.Join(errs...)
}

// RecipeDeleted decrements the counters and cleans up the recipe's image
// blob. A failed image delete is logged and swallowed; it never blocks the
// counter update. Missing counter documents are floored at 0.
func (m *CounterMaintainer) RecipeDeleted(ctx context.Context, r models.Recipe) error {
	if r.ImageURL != "" {
		slog.Info("deleting recipe image", "imageUrl", r.ImageURL)
		if err := m.images.DeleteImage(ctx, r.ImageURL); err != nil {
			slog.Warn("failed to delete recipe image", "imageUrl", r.ImageURL, "error", err)
		}
	}

	var errs []error
	if err := m.counters.Adjust(ctx, store.CounterAll, -1, 0); err != nil {
		errs = append(errs, fmt.Errorf("decrement %s: %w", store.CounterAll, err))
	}
	if r.IsPublished {
		if err := m.counters.Adjust(ctx, store.CounterPublished, -1, 0); err != nil {
			errs = append(errs, fmt.Errorf("decrement %s: %w", store.CounterPublished, err))
		}
	}
	return errors.Join(errs...)
}

// RecipeUpdated reacts to publish-flag transitions only. Any other field
// change leaves the counters alone.
func (m *CounterMaintainer) RecipeUpdated(ctx context.Context, old, updated models.Recipe) error {
	if old.IsPublished == updated.IsPublished {
		return nil
	}
	if updated.IsPublished {
		if err := m.counters.Adjust(ctx, store.CounterPublished, 1, 1); err != nil {
			return fmt.Errorf("increment %s: %w", store.CounterPublished, err)
		}
		return nil
	}
	if err := m.counters.Adjust(ctx, store.CounterPublished, -1, 0); err != nil {
		return fmt.Errorf("decrement %s: %w", store.CounterPublished, err)
	}
	return nil
}
