package category

import (
	"strings"

	"github.com/Veraticus/chitieu/internal/model"
)

// FindCategory resolves a label or free text to a category.
//
// An exact, case-insensitive match on id or name wins first. Otherwise the
// categories are scanned in catalog order and the first one owning a keyword
// contained in the label is returned.
func (r *Registry) FindCategory(label string) (model.Category, bool) {
	normalized := normalize(label)
	if normalized == "" {
		return model.Category{}, false
	}

	for _, cat := range r.categories {
		if cat.ID == normalized || strings.ToLower(cat.Name) == normalized {
			return cat, true
		}
	}

	for _, cat := range r.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(normalized, kw) {
				return cat, true
			}
		}
	}

	return model.Category{}, false
}
