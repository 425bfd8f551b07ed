package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/chitieu/internal/model"
)

func TestDefault(t *testing.T) {
	r := Default()

	require.Positive(t, r.Len())
	other := r.Other()
	assert.Equal(t, model.OtherCategoryID, other.ID)
	assert.Equal(t, model.OtherCategoryName, other.Name)
	assert.Empty(t, other.Keywords)

	// Catalog order is preserved.
	all := r.All()
	assert.Equal(t, "groceries", all[0].ID)
	assert.Equal(t, model.OtherCategoryID, all[len(all)-1].ID)

	books, ok := r.Get("books")
	require.True(t, ok)
	assert.Equal(t, "Books", books.Name)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		wantErr    error
		name       string
		categories []model.Category
	}{
		{
			name:       "empty catalog",
			categories: nil,
			wantErr:    ErrEmptyCatalog,
		},
		{
			name: "missing id",
			categories: []model.Category{
				{ID: " ", Name: "Blank"},
				{ID: "other", Name: "Other"},
			},
			wantErr: ErrMissingID,
		},
		{
			name: "duplicate id",
			categories: []model.Category{
				{ID: "books", Name: "Books"},
				{ID: "books", Name: "More Books"},
				{ID: "other", Name: "Other"},
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "missing other",
			categories: []model.Category{
				{ID: "books", Name: "Books"},
			},
			wantErr: ErrMissingOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load([]byte(`{"categories": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse category catalog")
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	all[0].Name = "Mutated"

	cat, ok := r.Get(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "Mutated", cat.Name)
}

func TestRegistry_MustGet(t *testing.T) {
	r := Default()

	cat, err := r.MustGet("fuel")
	require.NoError(t, err)
	assert.Equal(t, "Fuel", cat.Name)

	_, err = r.MustGet("spaceships")
	require.ErrorIs(t, err, ErrUnknownCategory)
}
