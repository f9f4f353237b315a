package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"flavourfusion/internal/types"
)

// Cache keys for the two recipe lists. Per-recipe detail entries use
// detailKey.
const (
	keyRecipes   = "recipes"
	keyDashboard = "recipes:dashboard"
)

// countFetchLimit bounds the concurrent favorite-count fetches during list
// assembly.
const countFetchLimit = 8

// Recipe is the client-side view of a recipe. Likes and UserHasLiked are
// assembled per viewer from the favorite endpoints; the server does not
// store them on the recipe record.
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CuisineType  string    `json:"cuisine_type"`
	CookingTime  int       `json:"cooking_time"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        int       `json:"likes"`
	UserHasLiked bool      `json:"userHasLiked"`
}

type recipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

type recipeResponse struct {
	Recipe Recipe `json:"recipe"`
}

func detailKey(id uuid.UUID) string {
	return "recipe:" + id.String()
}

// Recipes returns all public recipes with per-viewer like state, served
// from cache when fresh.
func (c *Client) Recipes(ctx context.Context) ([]Recipe, error) {
	return c.list(ctx, keyRecipes, "/recipes", false)
}

// Dashboard returns the logged-in user's own recipes.
func (c *Client) Dashboard(ctx context.Context) ([]Recipe, error) {
	return c.list(ctx, keyDashboard, "/recipes/dashboard", true)
}

func (c *Client) list(ctx context.Context, key, path string, auth bool) ([]Recipe, error) {
	if cached, ok := c.lists.Get(key); ok {
		return cloneRecipes(cached), nil
	}

	// Captured before the fetch so a response arriving after an
	// invalidation (or a later write) is discarded instead of resurrecting
	// stale data.
	version := c.lists.Version(key)

	var resp recipesResponse
	if err := c.get(ctx, path, auth, &resp); err != nil {
		return nil, err
	}
	recipes := resp.Recipes

	assembled, err := c.assemble(ctx, recipes)
	if err != nil {
		return nil, err
	}

	c.lists.SetIfVersion(key, version, assembled)
	return cloneRecipes(assembled), nil
}

// assemble joins the base records with the viewer's favorite set and every
// recipe's favorite count. The join is all-of-N: if any sub-fetch fails the
// whole assembly fails and no partial list is produced.
func (c *Client) assemble(ctx context.Context, recipes []Recipe) ([]Recipe, error) {
	favorites, err := c.favoriteSet(ctx)
	if err != nil {
		return nil, err
	}

	counts := make([]int64, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countFetchLimit)
	for i := range recipes {
		g.Go(func() error {
			var resp types.FavoriteCountResponse
			if err := c.get(gctx, "/recipes/"+recipes[i].ID.String()+"/favorite-count", false, &resp); err != nil {
				return err
			}
			counts[i] = resp.Count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].Likes = int(counts[i])
		recipes[i].UserHasLiked = favorites[recipes[i].ID]
	}
	return recipes, nil
}

// favoriteSet returns the IDs of recipes the viewer has favorited. An
// anonymous viewer has an empty set.
func (c *Client) favoriteSet(ctx context.Context) (map[uuid.UUID]bool, error) {
	if _, ok := c.Session(); !ok {
		return map[uuid.UUID]bool{}, nil
	}

	var resp recipesResponse
	if err := c.get(ctx, "/users/favorites", true, &resp); err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(resp.Recipes))
	for _, r := range resp.Recipes {
		set[r.ID] = true
	}
	return set, nil
}

// Recipe returns a single recipe with like state.
func (c *Client) Recipe(ctx context.Context, id uuid.UUID) (Recipe, error) {
	key := detailKey(id)
	if cached, ok := c.details.Get(key); ok {
		return cached, nil
	}
	version := c.details.Version(key)

	var resp recipeResponse
	if err := c.get(ctx, "/recipes/"+id.String(), false, &resp); err != nil {
		return Recipe{}, err
	}
	recipe := resp.Recipe

	var count types.FavoriteCountResponse
	if err := c.get(ctx, "/recipes/"+id.String()+"/favorite-count", false, &count); err != nil {
		return Recipe{}, err
	}
	recipe.Likes = int(count.Count)

	favorites, err := c.favoriteSet(ctx)
	if err != nil {
		return Recipe{}, err
	}
	recipe.UserHasLiked = favorites[id]

	c.details.SetIfVersion(key, version, recipe)
	return recipe, nil
}

// invalidateLists marks both cached lists stale so the next read refetches.
func (c *Client) invalidateLists() {
	c.lists.Invalidate(keyRecipes)
	c.lists.Invalidate(keyDashboard)
}

func cloneRecipes(recipes []Recipe) []Recipe {
	out := make([]Recipe, len(recipes))
	copy(out, recipes)
	return out
}
