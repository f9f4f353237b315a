// Package view derives the visible page of a recipe list from user-entered
// criteria. Derivation is a pure function: no network access, no caching,
// recomputed on every criteria change.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"flavourfusion/internal/client"
)

// PageSize is the fixed number of recipes per page.
const PageSize = 9

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortLikes  SortKey = "likes"
	SortTitle  SortKey = "title"
)

// CuisineAll and CookingTimeAll disable the respective filters.
const (
	CuisineAll     = "all"
	CookingTimeAll = 0
)

// Criteria is the client-local, ephemeral filter/sort/page state. It is
// never persisted and never reset by a data refresh.
type Criteria struct {
	// Search filters titles by case-insensitive substring; empty matches
	// all.
	Search string
	// Cuisine is CuisineAll or an exact cuisine tag.
	Cuisine string
	// MaxCookingTime is CookingTimeAll or an inclusive threshold in
	// minutes.
	MaxCookingTime int
	// Sort is one of the SortKey values; anything else behaves as
	// SortNewest.
	Sort SortKey
	// Page is 1-based. Out-of-range pages yield an empty page, not an
	// error.
	Page int
}

var titleCollator = collate.New(language.English)

// Derive filters, sorts and paginates recipes according to criteria and
// returns the visible page plus the total page count. The input slice is
// not mutated.
func Derive(recipes []client.Recipe, criteria Criteria) ([]client.Recipe, int) {
	filtered := filter(recipes, criteria)

	sorted := make([]client.Recipe, len(filtered))
	copy(sorted, filtered)
	switch criteria.Sort {
	case SortLikes:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Likes > sorted[j].Likes
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return titleCollator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	default:
		// Newest relies on the source ordering already reflecting recency;
		// the backend returns recipes created_at descending.
	}

	totalPages := (len(sorted) + PageSize - 1) / PageSize

	start := (criteria.Page - 1) * PageSize
	if criteria.Page < 1 || start >= len(sorted) {
		return []client.Recipe{}, totalPages
	}
	end := start + PageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], totalPages
}

// filter applies every active predicate, AND-combined.
func filter(recipes []client.Recipe, criteria Criteria) []client.Recipe {
	search := strings.ToLower(criteria.Search)

	var out []client.Recipe
	for _, r := range recipes {
		if search != "" && !strings.Contains(strings.ToLower(r.Title), search) {
			continue
		}
		if criteria.Cuisine != "" && criteria.Cuisine != CuisineAll && r.CuisineType != criteria.Cuisine {
			continue
		}
		if criteria.MaxCookingTime != CookingTimeAll && r.CookingTime > criteria.MaxCookingTime {
			continue
		}
		out = append(out, r)
	}
	return out
}
