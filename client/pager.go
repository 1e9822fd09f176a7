package client

import (
	"context"
	"fmt"

	"github.com/firerecipes/backend/internal/models"
)

// Page is one rendered page of recipes.
type Page struct {
	Number  int
	Recipes []models.RecipeDoc
	// TotalPages is ceil(countHint/perPage). The count hint comes from an
	// eventually-consistent counter, so this is advisory only; it drives the
	// direct-jump buttons, never the Next button.
	TotalPages int
	// IsLast is authoritative: it comes from probing page Number+1, not from
	// TotalPages.
	IsLast bool
	IsAuth bool
}

// Pager navigates the recipe list page by page. Rendering page N costs two
// list calls: the page itself and a speculative probe of page N+1 that
// decides whether Next stays enabled.
type Pager struct {
	client  *Client
	perPage int
	// filters applied to every page
	Category         string
	OrderByField     string
	OrderByDirection string
}

func NewPager(c *Client, perPage int) (*Pager, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("perPage must be positive, got %d", perPage)
	}
	return &Pager{client: c, perPage: perPage}, nil
}

// Fetch renders page n. If page n comes back empty and n > 1 (the collection
// shrank since the count hint was computed), it steps back a page and tries
// again.
func (p *Pager) Fetch(ctx context.Context, n int) (*Page, error) {
	if n < 1 {
		n = 1
	}
	for {
		resp, err := p.client.ListRecipes(ctx, p.listRequest(n))
		if err != nil {
			return nil, err
		}
		if len(resp.Documents) == 0 && n > 1 {
			n--
			continue
		}

		probe, err := p.client.ListRecipes(ctx, p.listRequest(n+1))
		if err != nil {
			return nil, err
		}

		return &Page{
			Number:     n,
			Recipes:    resp.Documents,
			TotalPages: totalPages(resp.RecipeCount, p.perPage),
			IsLast:     len(probe.Documents) == 0,
			IsAuth:     resp.IsAuth,
		}, nil
	}
}

func (p *Pager) listRequest(n int) ListRequest {
	return ListRequest{
		Category:         p.Category,
		OrderByField:     p.OrderByField,
		OrderByDirection: p.OrderByDirection,
		PageNumber:       n,
		PerPage:          p.perPage,
	}
}

func totalPages(count int64, perPage int) int {
	if count <= 0 {
		return 0
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}
