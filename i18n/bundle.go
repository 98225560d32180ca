package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a serialized translations payload cannot
// be parsed.
var ErrMalformed = errors.New("malformed translations payload")

// FieldSet is a single locale's required text fields for one entity type.
type FieldSet[F any] interface {
	// Missing returns the name of the first empty required field, or "".
	Missing() string
	// Merge fills this value's empty fields from existing and returns the result.
	Merge(existing F) F
}

// BlogFields is a blog post's per-locale content.
type BlogFields struct {
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
}

func (f BlogFields) Missing() string {
	if f.Title == "" {
		return "title"
	}
	if f.Content == "" {
		return "content"
	}
	return ""
}

func (f BlogFields) Merge(existing BlogFields) BlogFields {
	if f.Title == "" {
		f.Title = existing.Title
	}
	if f.Content == "" {
		f.Content = existing.Content
	}
	return f
}

// TeamFields is a team member's per-locale content.
type TeamFields struct {
	Position    string `bson:"position" json:"position"`
	Description string `bson:"description" json:"description"`
}

func (f TeamFields) Missing() string {
	if f.Position == "" {
		return "position"
	}
	if f.Description == "" {
		return "description"
	}
	return ""
}

func (f TeamFields) Merge(existing TeamFields) TeamFields {
	if f.Position == "" {
		f.Position = existing.Position
	}
	if f.Description == "" {
		f.Description = existing.Description
	}
	return f
}

// Bundle holds one field set per locale.
type Bundle[F FieldSet[F]] map[Locale]F

// ParseBundle decodes a serialized translations payload. Locale keys are
// normalized (aliases accepted); unknown locales are dropped.
func ParseBundle[F FieldSet[F]](raw []byte) (Bundle[F], error) {
	var decoded map[string]F
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ErrMalformed
	}
	if decoded == nil {
		return nil, ErrMalformed
	}
	b := make(Bundle[F], len(decoded))
	for key, fields := range decoded {
		if loc, ok := Normalize(key); ok {
			b[loc] = fields
		}
	}
	return b, nil
}

// ValidateComplete requires every supported locale to be present with all
// required fields non-empty. The error names the first offending locale.
func ValidateComplete[F FieldSet[F]](b Bundle[F]) error {
	for _, loc := range Supported {
		fields, ok := b[loc]
		if !ok {
			return fmt.Errorf("translations are required for locale: %s", loc)
		}
		if field := fields.Missing(); field != "" {
			return fmt.Errorf("%s is required for locale: %s", field, loc)
		}
	}
	return nil
}

// MergeBundle shallow-merges partial into existing per locale: a locale
// absent from partial is untouched, and empty fields within a partial
// locale retain the existing values. The inputs are not mutated.
func MergeBundle[F FieldSet[F]](existing, partial Bundle[F]) Bundle[F] {
	out := make(Bundle[F], len(existing))
	for loc, fields := range existing {
		out[loc] = fields
	}
	for loc, fields := range partial {
		out[loc] = fields.Merge(existing[loc])
	}
	return out
}

// Resolve projects a bundle into a single locale's fields. Each field
// falls back to the fallback locale, then to the zero value. It never fails.
func Resolve[F FieldSet[F]](b Bundle[F], loc Locale) F {
	return b[loc].Merge(b[Fallback])
}
