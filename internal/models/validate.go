package models

import (
	"fmt"
	"strings"
)

// ValidationError reports every missing or invalid field of a recipe payload,
// not just the first one found.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Recipe is not valid. Missing/invalid fields: %s",
		strings.Join(e.Fields, " "))
}

// Validate checks a payload against the write-time invariants: name,
// category, directions, publishDate and imageUrl present, ingredients
// non-empty, isPublished strictly boolean. It returns nil when the payload is
// valid, otherwise a ValidationError naming all offending fields.
func (p RecipePayload) Validate() error {
	var missing []string

	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Directions == "" {
		missing = append(missing, "directions")
	}
	if p.IsPublished == nil {
		missing = append(missing, "isPublished")
	}
	if len(p.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if p.PublishDate == nil || *p.PublishDate == 0 {
		missing = append(missing, "publishDate")
	}
	if p.ImageURL == "" {
		missing = append(missing, "imageUrl")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
