// Package category holds the static spending-category catalog and resolves
// free text to a category.
package category

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/chitieu/internal/model"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog errors.
var (
	ErrEmptyCatalog    = errors.New("category catalog is empty")
	ErrDuplicateID     = errors.New("duplicate category id")
	ErrMissingID       = errors.New("category id cannot be empty")
	ErrMissingOther    = errors.New("catalog must contain the \"other\" category")
	ErrUnknownCategory = errors.New("unknown category")
)

type catalogFile struct {
	Categories []model.Category `json:"categories"`
}

// Registry is the immutable, ordered set of known categories. Catalog order is
// the keyword tie-break order used by FindCategory.
type Registry struct {
	byID       map[string]int
	categories []model.Category
}

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	r, err := Load(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded category catalog is invalid: %v", err))
	}
	return r
}

// Load parses a JSON catalog of the form {"categories": [...]}.
func Load(data []byte) (*Registry, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category catalog: %w", err)
	}
	return New(file.Categories)
}

// New builds a registry from categories in tie-break order.
func New(categories []model.Category) (*Registry, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	r := &Registry{
		byID:       make(map[string]int, len(categories)),
		categories: make([]model.Category, 0, len(categories)),
	}

	for _, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingID, cat.Name)
		}
		if _, exists := r.byID[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}

		keywords := make([]string, 0, len(cat.Keywords))
		for _, kw := range cat.Keywords {
			if kw = normalize(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}

		cat.ID = id
		cat.Keywords = keywords
		r.byID[id] = len(r.categories)
		r.categories = append(r.categories, cat)
	}

	if _, ok := r.byID[model.OtherCategoryID]; !ok {
		return nil, ErrMissingOther
	}

	return r, nil
}

// All returns a copy of every category in catalog order.
func (r *Registry) All() []model.Category {
	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Get returns the category with the given id.
func (r *Registry) Get(id string) (model.Category, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return model.Category{}, false
	}
	return r.categories[idx], true
}

// MustGet returns the category with the given id or an ErrUnknownCategory error.
func (r *Registry) MustGet(id string) (model.Category, error) {
	cat, ok := r.Get(id)
	if !ok {
		return model.Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	return cat, nil
}

// Other returns the sentinel category.
func (r *Registry) Other() model.Category {
	cat, _ := r.Get(model.OtherCategoryID)
	return cat
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
