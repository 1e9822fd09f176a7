// Package sweep publishes recipes whose scheduled publish date has passed.
// It runs on a daily schedule; each flip is a merge write that feeds the
// update trigger like any other recipe update, so the published counter
// follows without extra work here.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/firerecipes/backend/internal/store"
)

// merge-write fan-out bound; Firestore takes these comfortably in parallel
const maxConcurrentPublishes = 8

// Sweeper scans unpublished recipes and flips the ones that are due.
type Sweeper struct {
	recipes store.RecipeStore
	now     func() time.Time
}

func NewSweeper(recipes store.RecipeStore) *Sweeper {
	return &Sweeper{recipes: recipes, now: time.Now}
}

// Run executes one sweep. Recipes already published are never touched; due
// recipes get {isPublished: true} merged in, nothing else.
func (s *Sweeper) Run(ctx context.Context) error {
	docs, err := s.recipes.Unpublished(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan unpublished recipes: %w", err)
	}

	now := s.now().Unix()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPublishes)
	published := 0
	for _, doc := range docs {
		if doc.PublishDate > now {
			continue
		}
		published++
		g.Go(func() error {
			if err := s.recipes.MarkPublished(ctx, doc.ID); err != nil {
				return fmt.Errorf("failed to publish recipe %s: %w", doc.ID, err)
			}
			slog.Info("recipe is now published", "id", doc.ID, "name", doc.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("publish sweep finished", "scanned", len(docs), "published", published)
	return nil
}
