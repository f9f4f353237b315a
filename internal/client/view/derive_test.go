package view

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flavourfusion/internal/client"
)

func makeRecipes(n int) []client.Recipe {
	recipes := make([]client.Recipe, n)
	cuisines := []string{"chinese", "indian", "japanese"}
	for i := range recipes {
		recipes[i] = client.Recipe{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Recipe %02d", i+1),
			CuisineType: cuisines[i%len(cuisines)],
			CookingTime: 10 * (i%6 + 1),
			Likes:       i % 5,
		}
	}
	return recipes
}

func defaultCriteria() Criteria {
	return Criteria{
		Cuisine: CuisineAll,
		Sort:    SortNewest,
		Page:    1,
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	recipes := makeRecipes(20)
	criteria := defaultCriteria()
	criteria.Sort = SortLikes

	first, firstPages := Derive(recipes, criteria)
	second, secondPages := Derive(recipes, criteria)

	assert.Equal(t, first, second)
	assert.Equal(t, firstPages, secondPages)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	recipes := makeRecipes(20)
	original := make([]client.Recipe, len(recipes))
	copy(original, recipes)

	criteria := defaultCriteria()
	criteria.Sort = SortTitle
	Derive(recipes, criteria)

	assert.Equal(t, original, recipes)
}

func TestDeriveFiltersAreANDCombined(t *testing.T) {
	recipes := []client.Recipe{
		{ID: uuid.New(), Title: "Spicy Noodles", CuisineType: "chinese", CookingTime: 20},
		{ID: uuid.New(), Title: "Spicy Curry", CuisineType: "indian", CookingTime: 50},
		{ID: uuid.New(), Title: "Mild Noodles", CuisineType: "chinese", CookingTime: 90},
		{ID: uuid.New(), Title: "Spicy Dumplings", CuisineType: "chinese", CookingTime: 25},
	}

	criteria := defaultCriteria()
	criteria.Search = "spicy"
	criteria.Cuisine = "chinese"
	criteria.MaxCookingTime = 30

	visible, totalPages := Derive(recipes, criteria)
	require.Len(t, visible, 2)
	assert.Equal(t, 1, totalPages)
	for _, r := range visible {
		assert.Contains(t, r.Title, "Spicy")
		assert.Equal(t, "chinese", r.CuisineType)
		assert.LessOrEqual(t, r.CookingTime, 30)
	}
}

func TestDeriveSearchIsCaseInsensitive(t *testing.T) {
	recipes := []client.Recipe{
		{ID: uuid.New(), Title: "Mapo Tofu"},
		{ID: uuid.New(), Title: "Miso Soup"},
	}

	criteria := defaultCriteria()
	criteria.Search = "MAPO"

	visible, _ := Derive(recipes, criteria)
	require.Len(t, visible, 1)
	assert.Equal(t, "Mapo Tofu", visible[0].Title)
}

func TestDeriveEmptySearchMatchesAll(t *testing.T) {
	recipes := makeRecipes(5)

	visible, totalPages := Derive(recipes, defaultCriteria())
	assert.Len(t, visible, 5)
	assert.Equal(t, 1, totalPages)
}

func TestDeriveSortByLikesIsStableDescending(t *testing.T) {
	recipes := []client.Recipe{
		{ID: uuid.New(), Title: "A", Likes: 3},
		{ID: uuid.New(), Title: "B", Likes: 7},
		{ID: uuid.New(), Title: "C", Likes: 3},
		{ID: uuid.New(), Title: "D", Likes: 7},
	}

	criteria := defaultCriteria()
	criteria.Sort = SortLikes

	visible, _ := Derive(recipes, criteria)
	require.Len(t, visible, 4)

	for i := 1; i < len(visible); i++ {
		assert.GreaterOrEqual(t, visible[i-1].Likes, visible[i].Likes)
	}
	// Ties keep source order: B before D, A before C.
	assert.Equal(t, "B", visible[0].Title)
	assert.Equal(t, "D", visible[1].Title)
	assert.Equal(t, "A", visible[2].Title)
	assert.Equal(t, "C", visible[3].Title)
}

func TestDeriveSortByTitleAscending(t *testing.T) {
	recipes := []client.Recipe{
		{ID: uuid.New(), Title: "okonomiyaki"},
		{ID: uuid.New(), Title: "Chana Masala"},
		{ID: uuid.New(), Title: "butter chicken"},
	}

	criteria := defaultCriteria()
	criteria.Sort = SortTitle

	visible, _ := Derive(recipes, criteria)
	require.Len(t, visible, 3)
	assert.Equal(t, "butter chicken", visible[0].Title)
	assert.Equal(t, "Chana Masala", visible[1].Title)
	assert.Equal(t, "okonomiyaki", visible[2].Title)
}

func TestDeriveSortNewestKeepsSourceOrder(t *testing.T) {
	recipes := makeRecipes(12)

	visible, _ := Derive(recipes, defaultCriteria())
	require.Len(t, visible, PageSize)
	for i := range visible {
		assert.Equal(t, recipes[i].ID, visible[i].ID)
	}
}

func TestDerivePagination(t *testing.T) {
	recipes := makeRecipes(20)

	tests := []struct {
		page      int
		wantLen   int
		wantPages int
	}{
		{page: 1, wantLen: 9, wantPages: 3},
		{page: 2, wantLen: 9, wantPages: 3},
		{page: 3, wantLen: 2, wantPages: 3},
		{page: 4, wantLen: 0, wantPages: 3},
		{page: 0, wantLen: 0, wantPages: 3},
		{page: -1, wantLen: 0, wantPages: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page_%d", tt.page), func(t *testing.T) {
			criteria := defaultCriteria()
			criteria.Page = tt.page

			visible, totalPages := Derive(recipes, criteria)
			assert.Len(t, visible, tt.wantLen)
			assert.Equal(t, tt.wantPages, totalPages)
		})
	}
}

func TestDerivePageOffsets(t *testing.T) {
	recipes := makeRecipes(20)

	criteria := defaultCriteria()
	criteria.Page = 2

	visible, _ := Derive(recipes, criteria)
	require.Len(t, visible, 9)
	assert.Equal(t, recipes[9].ID, visible[0].ID)
	assert.Equal(t, recipes[17].ID, visible[8].ID)
}

func TestDeriveZeroMatchesYieldsEmptyPageAndZeroPages(t *testing.T) {
	recipes := makeRecipes(20)

	criteria := defaultCriteria()
	criteria.Search = "no such recipe"

	visible, totalPages := Derive(recipes, criteria)
	assert.Empty(t, visible)
	assert.Equal(t, 0, totalPages)
}

func TestDeriveEmptyInput(t *testing.T) {
	visible, totalPages := Derive(nil, defaultCriteria())
	assert.Empty(t, visible)
	assert.Equal(t, 0, totalPages)
}
