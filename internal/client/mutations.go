package client

import (
	"context"

	"github.com/google/uuid"

	"flavourfusion/internal/types"
)

// RecipeDraft holds the editable fields of a recipe.
type RecipeDraft struct {
	Title        string
	CuisineType  string
	CookingTime  int
	Ingredients  string
	Instructions string
}

func (d RecipeDraft) request() types.RecipeRequest {
	return types.RecipeRequest{
		Title:        d.Title,
		CuisineType:  d.CuisineType,
		CookingTime:  d.CookingTime,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
	}
}

// CreateRecipe submits a draft. On success the cached lists are invalidated
// so the next read refetches; on failure the cache is left untouched. No
// optimistic mutation here: the UI shows the previous state until the
// refetch completes.
func (c *Client) CreateRecipe(ctx context.Context, draft RecipeDraft) (*Recipe, error) {
	const action = "create recipe"

	var resp recipeResponse
	if err := c.postAuth(ctx, "/recipes", draft.request(), &resp); err != nil {
		c.notifier.Failure(action, err)
		return nil, err
	}

	c.invalidateLists()
	c.notifier.Success(action)
	return &resp.Recipe, nil
}

// UpdateRecipe submits the full record; fields the caller did not change
// are round-tripped from the pre-edit snapshot.
func (c *Client) UpdateRecipe(ctx context.Context, recipe Recipe) error {
	const action = "update recipe"

	req := types.RecipeRequest{
		Title:        recipe.Title,
		CuisineType:  recipe.CuisineType,
		CookingTime:  recipe.CookingTime,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}
	if err := c.putAuth(ctx, "/recipes/"+recipe.ID.String(), req, nil); err != nil {
		c.notifier.Failure(action, err)
		return err
	}

	c.invalidateLists()
	c.details.Invalidate(detailKey(recipe.ID))
	c.notifier.Success(action)
	return nil
}

// DeleteRecipe removes a recipe. Confirmation is the caller's concern; by
// the time this runs the user has already confirmed.
func (c *Client) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	const action = "delete recipe"

	if err := c.deleteAuth(ctx, "/recipes/"+id.String()); err != nil {
		c.notifier.Failure(action, err)
		return err
	}

	c.invalidateLists()
	c.details.Invalidate(detailKey(id))
	c.notifier.Success(action)
	return nil
}
