package models

import "time"

// Recipe is the persisted form of a recipe in the Firestore "recipes"
// collection. PublishDate is a native Firestore timestamp; the wire form
// carries it as plain seconds since epoch instead.
type Recipe struct {
	Name        string    `firestore:"name"`
	Category    string    `firestore:"category"`
	Directions  string    `firestore:"directions"`
	Ingredients []string  `firestore:"ingredients"`
	IsPublished bool      `firestore:"isPublished"`
	PublishDate time.Time `firestore:"publishDate"`
	ImageURL    string    `firestore:"imageUrl"`
}

// RecipeDoc is a recipe together with its store-assigned document ID, in the
// JSON shape returned by the list endpoint.
type RecipeDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Directions  string   `json:"directions"`
	Ingredients []string `json:"ingredients"`
	IsPublished bool     `json:"isPublished"`
	PublishDate int64    `json:"publishDate"`
	ImageURL    string   `json:"imageUrl"`
}

// NewRecipeDoc converts a persisted recipe to its wire form, normalizing the
// publish date to seconds since epoch.
func NewRecipeDoc(id string, r Recipe) RecipeDoc {
	return RecipeDoc{
		ID:          id,
		Name:        r.Name,
		Category:    r.Category,
		Directions:  r.Directions,
		Ingredients: r.Ingredients,
		IsPublished: r.IsPublished,
		PublishDate: r.PublishDate.Unix(),
		ImageURL:    r.ImageURL,
	}
}

// RecipePayload is the request body accepted by the create and update
// endpoints. Pointer fields distinguish "absent" from the zero value so the
// validator can name every missing field.
type RecipePayload struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Directions  string   `json:"directions"`
	Ingredients []string `json:"ingredients"`
	IsPublished *bool    `json:"isPublished"`
	PublishDate *int64   `json:"publishDate"`
	ImageURL    string   `json:"imageUrl"`
}

// Sanitize rebuilds the payload keeping only the recognized fields and
// converts the numeric publish date (seconds since epoch) to the store's
// timestamp representation. Callers must validate the payload first.
func (p RecipePayload) Sanitize() Recipe {
	var publishDate time.Time
	if p.PublishDate != nil {
		publishDate = time.UnixMilli(*p.PublishDate * 1000).UTC()
	}
	var isPublished bool
	if p.IsPublished != nil {
		isPublished = *p.IsPublished
	}
	return Recipe{
		Name:        p.Name,
		Category:    p.Category,
		Directions:  p.Directions,
		Ingredients: p.Ingredients,
		IsPublished: isPublished,
		PublishDate: publishDate,
		ImageURL:    p.ImageURL,
	}
}
