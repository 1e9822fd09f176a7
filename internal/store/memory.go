package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/firerecipes/backend/internal/models"
)

// MemStore is an in-memory RecipeStore and CounterStore with the same query
// and counter semantics as the Firestore implementation. Tests across
// packages use it in place of an emulator.
type MemStore struct {
	mu       sync.Mutex
	recipes  map[string]models.Recipe
	order    []string // insertion order, the unordered-query iteration order
	counters map[string]int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		recipes:  make(map[string]models.Recipe),
		counters: make(map[string]int64),
	}
}

func (s *MemStore) Add(ctx context.Context, r models.Recipe) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.recipes[id] = r
	s.order = append(s.order, id)
	return id, nil
}

func (s *MemStore) Set(ctx context.Context, id string, r models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return fmt.Errorf("no recipe %s", id)
	}
	s.recipes[id] = r
	return nil
}

// Get returns the recipe at id. Tests use it to read documents back directly.
func (s *MemStore) Get(id string) (models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	return r, ok
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return fmt.Errorf("no recipe %s", id)
	}
	delete(s.recipes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemStore) Find(ctx context.Context, q Query) ([]models.RecipeDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := []models.RecipeDoc{}
	for _, id := range s.order {
		r := s.recipes[id]
		if !q.Authenticated && !r.IsPublished {
			continue
		}
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		docs = append(docs, models.NewRecipeDoc(id, r))
	}

	if q.OrderByField != "" {
		less, err := lessFunc(q.OrderByField)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(docs, func(i, j int) bool {
			if q.Descending() {
				return less(docs[j], docs[i])
			}
			return less(docs[i], docs[j])
		})
	}

	if q.PerPage > 0 {
		offset := q.Offset()
		if offset >= len(docs) {
			return []models.RecipeDoc{}, nil
		}
		docs = docs[offset:]
		if len(docs) > q.PerPage {
			docs = docs[:q.PerPage]
		}
	}
	return docs, nil
}

func lessFunc(field string) (func(a, b models.RecipeDoc) bool, error) {
	switch field {
	case "publishDate":
		return func(a, b models.RecipeDoc) bool { return a.PublishDate < b.PublishDate }, nil
	case "name":
		return func(a, b models.RecipeDoc) bool { return a.Name < b.Name }, nil
	case "category":
		return func(a, b models.RecipeDoc) bool { return a.Category < b.Category }, nil
	default:
		return nil, fmt.Errorf("cannot order by field %q", field)
	}
}

func (s *MemStore) Unpublished(ctx context.Context) ([]models.RecipeDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := []models.RecipeDoc{}
	for _, id := range s.order {
		r := s.recipes[id]
		if !r.IsPublished {
			docs = append(docs, models.NewRecipeDoc(id, r))
		}
	}
	return docs, nil
}

func (s *MemStore) MarkPublished(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("no recipe %s", id)
	}
	r.IsPublished = true
	s.recipes[id] = r
	return nil
}

func (s *MemStore) Count(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key], nil
}

func (s *MemStore) Adjust(ctx context.Context, key string, delta, initial int64) error {
	if key != CounterAll && key != CounterPublished {
		return fmt.Errorf("unknown counter key %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counters[key]; !ok {
		s.counters[key] = initial
		return nil
	}
	s.counters[key] += delta
	return nil
}
