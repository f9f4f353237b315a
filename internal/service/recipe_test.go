package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"flavourfusion/internal/models"
	"flavourfusion/internal/types"
)

func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, &types.RecipeRequest{
		Title:       "Mapo Tofu",
		CuisineType: "chinese",
		CookingTime: 30,
		Ingredients: "tofu, doubanjiang",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", created.ID.String())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu", got.Title)
	assert.Equal(t, owner.ID, got.UserID)
}

func TestListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"First", "Second", "Third"} {
		recipe := models.Recipe{
			Title:     title,
			UserID:    owner.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&recipe).Error)
	}

	recipes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Third", recipes[0].Title)
	assert.Equal(t, "First", recipes[2].Title)
}

func TestListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	_, err := svc.Create(ctx, alice.ID, &types.RecipeRequest{Title: "Mapo Tofu"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, &types.RecipeRequest{Title: "Okonomiyaki"})
	require.NoError(t, err)

	recipes, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mapo Tofu", recipes[0].Title)
}

func TestUpdateRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, &types.RecipeRequest{Title: "Mapo Tofu", CookingTime: 30})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, owner.ID, &types.RecipeRequest{
		Title:       "Mapo Tofu (extra numbing)",
		CookingTime: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu (extra numbing)", updated.Title)
	assert.Equal(t, 35, updated.CookingTime)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu (extra numbing)", got.Title)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, &types.RecipeRequest{Title: "Mapo Tofu"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, bob.ID, &types.RecipeRequest{Title: "Stolen"})
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mapo Tofu", got.Title)
}

func TestDeleteRecipeRemovesFavorites(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	favorites := NewFavoriteService(db, nil, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, &types.RecipeRequest{Title: "Mapo Tofu"})
	require.NoError(t, err)
	_, _, err = favorites.Toggle(ctx, created.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, alice.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var favCount int64
	require.NoError(t, db.Model(&models.RecipeFavorite{}).Where("recipe_id = ?", created.ID).Count(&favCount).Error)
	assert.Zero(t, favCount)
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, &types.RecipeRequest{Title: "Mapo Tofu"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, bob.ID), ErrNotOwner)

	_, err = svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}
