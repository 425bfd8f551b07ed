package model

// OtherCategoryID is the sentinel category used when nothing in the catalog matches.
const OtherCategoryID = "other"

// OtherCategoryName is the display name of the sentinel category.
const OtherCategoryName = "Other"

// Category represents a spending category from the static catalog.
type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon,omitempty"`
	Color    string   `json:"color,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// IsOther reports whether the category is the sentinel "other" category.
func (c Category) IsOther() bool {
	return c.ID == OtherCategoryID
}
