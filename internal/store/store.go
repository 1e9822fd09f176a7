// Package store defines narrow persistence interfaces over the recipe
// catalog's two shared mutable resources: the recipes collection and the two
// denormalized counter documents. Firestore-backed implementations live
// alongside an in-memory one used by tests.
package store

import (
	"context"

	"github.com/firerecipes/backend/internal/models"
)

const (
	// RecipesCollection holds the recipe documents, the source of truth.
	RecipesCollection = "recipes"
	// CountsCollection holds the two derived counter documents.
	CountsCollection = "recipeCounts"

	// CounterAll tracks every recipe document in existence.
	CounterAll = "all"
	// CounterPublished tracks recipes with isPublished == true.
	CounterPublished = "published"
)

// Query describes one filtered, ordered, paged read of the recipes
// collection. The zero value reads the whole collection as an anonymous
// caller would see it.
type Query struct {
	// Authenticated callers see every recipe; anonymous callers are
	// restricted to published recipes unconditionally.
	Authenticated bool
	// Category restricts to an exact category key match when non-empty.
	Category string
	// OrderByField applies ordering when non-empty. Direction defaults to
	// ascending.
	OrderByField     string
	OrderByDirection string
	// PerPage limits the result when > 0; 0 means no paging.
	PerPage int
	// PageNumber is 1-based and skips (PageNumber-1)*PerPage documents. It is
	// ignored unless PerPage > 0.
	PageNumber int
}

// CounterKey returns the counter applicable to this query: the full count for
// authenticated callers, the published count for anonymous ones.
func (q Query) CounterKey() string {
	if q.Authenticated {
		return CounterAll
	}
	return CounterPublished
}

// Offset returns the number of documents to skip before the limited window.
func (q Query) Offset() int {
	if q.PerPage > 0 && q.PageNumber > 0 {
		return (q.PageNumber - 1) * q.PerPage
	}
	return 0
}

// Descending reports whether the requested order direction is descending.
// Anything other than "desc" means ascending.
func (q Query) Descending() bool {
	return q.OrderByDirection == "desc"
}

// RecipeStore is the recipe collection. The Recipe API is its only writer.
type RecipeStore interface {
	// Add stores a new recipe and returns its store-assigned ID.
	Add(ctx context.Context, r models.Recipe) (string, error)
	// Set fully replaces the document at id with r.
	Set(ctx context.Context, id string, r models.Recipe) error
	// Delete removes the document at id.
	Delete(ctx context.Context, id string) error
	// Find runs a Query and returns matching documents in query order.
	Find(ctx context.Context, q Query) ([]models.RecipeDoc, error)
	// Unpublished returns every recipe with isPublished == false.
	Unpublished(ctx context.Context) ([]models.RecipeDoc, error)
	// MarkPublished merge-writes {isPublished: true} into the document at id,
	// leaving every other field untouched.
	MarkPublished(ctx context.Context, id string) error
}

// CounterStore is the counter collection, owned exclusively by the counter
// maintainer. Values are never cached in process memory.
type CounterStore interface {
	// Count reads a counter value; a missing document reads as 0.
	Count(ctx context.Context, key string) (int64, error)
	// Adjust applies a relative delta to a counter. If the counter document
	// exists the delta is applied as an atomic increment; if it is missing the
	// document is created with the given initial value instead.
	Adjust(ctx context.Context, key string, delta, initial int64) error
}

// ImageStore is the external blob store holding recipe images.
type ImageStore interface {
	// DeleteImage removes the blob referenced by a recipe's imageUrl.
	DeleteImage(ctx context.Context, imageURL string) error
}
