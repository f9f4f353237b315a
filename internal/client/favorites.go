package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flavourfusion/internal/types"
)

// ToggleState tracks the lifecycle of the most recent like toggle for a
// recipe: the optimistic window is Pending, and it resolves to Confirmed or
// Reverted.
type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
	ToggleConfirmed
	ToggleReverted
)

func (s ToggleState) String() string {
	switch s {
	case TogglePending:
		return "pending"
	case ToggleConfirmed:
		return "confirmed"
	case ToggleReverted:
		return "reverted"
	default:
		return "idle"
	}
}

// ToggleStatus reports the state of the last like toggle for a recipe.
func (c *Client) ToggleStatus(id uuid.UUID) ToggleState {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()
	return c.toggles[id]
}

func (c *Client) setToggleState(id uuid.UUID, state ToggleState) {
	c.toggleMu.Lock()
	c.toggles[id] = state
	c.toggleMu.Unlock()
}

// ToggleLike flips the viewer's like on a recipe. The cached copy is
// mutated optimistically before the request goes out; on success the
// authoritative count is fetched and written over the optimistic one, and
// on failure the optimistic mutation is reverted exactly.
//
// There is deliberately no in-flight guard: a second toggle may fire while
// one is pending, and the last response to arrive wins the cache write.
func (c *Client) ToggleLike(ctx context.Context, id uuid.UUID) error {
	const action = "like recipe"

	prior, ok := c.cachedRecipe(id)
	if !ok {
		// Nothing cached to mutate optimistically; fetch the settled state
		// first.
		fetched, err := c.Recipe(ctx, id)
		if err != nil {
			c.notifier.Failure(action, err)
			return err
		}
		prior = fetched
	}

	delta := 1
	if prior.UserHasLiked {
		delta = -1
	}

	// Optimistic step: applied synchronously so callers observe the
	// flipped state before any network round-trip.
	c.applyLike(id, !prior.UserHasLiked, prior.Likes+delta)
	c.setToggleState(id, TogglePending)

	if err := c.postAuth(ctx, "/recipes/"+id.String()+"/favorite", nil, nil); err != nil {
		c.applyLike(id, prior.UserHasLiked, prior.Likes)
		c.setToggleState(id, ToggleReverted)
		c.notifier.Failure(action, err)
		return err
	}

	// Reconcile only the count with the server; userHasLiked keeps its
	// optimistic value.
	var count types.FavoriteCountResponse
	if err := c.get(ctx, "/recipes/"+id.String()+"/favorite-count", false, &count); err != nil {
		c.logger.Warn("failed to reconcile favorite count", zap.Error(err))
	} else {
		c.applyLikeCount(id, int(count.Count))
	}

	c.setToggleState(id, ToggleConfirmed)
	return nil
}

// cachedRecipe finds the recipe in any cache entry, preferring the public
// list.
func (c *Client) cachedRecipe(id uuid.UUID) (Recipe, bool) {
	for _, key := range []string{keyRecipes, keyDashboard} {
		if list, ok := c.lists.Get(key); ok {
			for _, r := range list {
				if r.ID == id {
					return r, true
				}
			}
		}
	}
	if r, ok := c.details.Get(detailKey(id)); ok {
		return r, true
	}
	return Recipe{}, false
}

// applyLike writes like state into every cache entry holding the recipe.
func (c *Client) applyLike(id uuid.UUID, liked bool, likes int) {
	update := func(list []Recipe) []Recipe {
		out := cloneRecipes(list)
		for i := range out {
			if out[i].ID == id {
				out[i].UserHasLiked = liked
				out[i].Likes = likes
			}
		}
		return out
	}
	c.lists.Update(keyRecipes, update)
	c.lists.Update(keyDashboard, update)
	c.details.Update(detailKey(id), func(r Recipe) Recipe {
		r.UserHasLiked = liked
		r.Likes = likes
		return r
	})
}

// applyLikeCount overwrites only the like count, leaving userHasLiked as is.
func (c *Client) applyLikeCount(id uuid.UUID, likes int) {
	update := func(list []Recipe) []Recipe {
		out := cloneRecipes(list)
		for i := range out {
			if out[i].ID == id {
				out[i].Likes = likes
			}
		}
		return out
	}
	c.lists.Update(keyRecipes, update)
	c.lists.Update(keyDashboard, update)
	c.details.Update(detailKey(id), func(r Recipe) Recipe {
		r.Likes = likes
		return r
	})
}
