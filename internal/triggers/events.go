package triggers

import (
	"path"
	"time"

	"github.com/firerecipes/backend/internal/models"
)

// DocumentEvent is the data payload of a Firestore document-change event.
// Create events carry only Value, delete events only OldValue, update events
// both.
type DocumentEvent struct {
	OldValue DocumentSnapshot `json:"oldValue"`
	Value    DocumentSnapshot `json:"value"`
}

// DocumentSnapshot is one side of a document change, with fields in the
// Firestore REST value encoding.
type DocumentSnapshot struct {
	Name   string           `json:"name"`
	Fields map[string]Value `json:"fields"`
}

// Exists reports whether this side of the change holds a document.
func (s DocumentSnapshot) Exists() bool {
	return s.Name != ""
}

// ID is the document ID, the last segment of the full resource name.
func (s DocumentSnapshot) ID() string {
	return path.Base(s.Name)
}

// Value is a Firestore REST-encoded field value. Only the variants a recipe
// document uses are decoded.
type Value struct {
	StringValue    *string     `json:"stringValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	TimestampValue *time.Time  `json:"timestampValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
}

// ArrayValue is the REST encoding of an array field.
type ArrayValue struct {
	Values []Value `json:"values"`
}

// Recipe decodes the snapshot's fields into a recipe. Absent or
// differently-typed fields decode to zero values.
func (s DocumentSnapshot) Recipe() models.Recipe {
	return models.Recipe{
		Name:        s.str("name"),
		Category:    s.str("category"),
		Directions:  s.str("directions"),
		Ingredients: s.strSlice("ingredients"),
		IsPublished: s.boolean("isPublished"),
		PublishDate: s.timestamp("publishDate"),
		ImageURL:    s.str("imageUrl"),
	}
}

func (s DocumentSnapshot) str(field string) string {
	if v, ok := s.Fields[field]; ok && v.StringValue != nil {
		return *v.StringValue
	}
	return ""
}

func (s DocumentSnapshot) boolean(field string) bool {
	if v, ok := s.Fields[field]; ok && v.BooleanValue != nil {
		return *v.BooleanValue
	}
	return false
}

func (s DocumentSnapshot) timestamp(field string) time.Time {
	if v, ok := s.Fields[field]; ok && v.TimestampValue != nil {
		return *v.TimestampValue
	}
	return time.Time{}
}

func (s DocumentSnapshot) strSlice(field string) []string {
	v, ok := s.Fields[field]
	if !ok || v.ArrayValue == nil {
		return nil
	}
	out := make([]string, 0, len(v.ArrayValue.Values))
	for _, elem := range v.ArrayValue.Values {
		if elem.StringValue != nil {
			out = append(out, *elem.StringValue)
		}
	}
	return out
}
