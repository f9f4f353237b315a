// Command seed populates the database with demo users and recipes.
package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flavourfusion/config"
	"flavourfusion/internal/database"
	"flavourfusion/internal/logging"
	"flavourfusion/internal/service"
	"flavourfusion/internal/types"
)

type seedRecipe struct {
	types.RecipeRequest
	owner string
}

var seedUsers = []struct {
	username string
	email    string
	password string
}{
	{"alice", "alice@example.com", "password123"},
	{"bob", "bob@example.com", "password123"},
}

var seedRecipes = []seedRecipe{
	{types.RecipeRequest{Title: "Mapo Tofu", CuisineType: "chinese", CookingTime: 35, Ingredients: "tofu, ground pork, doubanjiang, sichuan peppercorns", Instructions: "Fry the pork, add doubanjiang, simmer tofu, finish with peppercorn oil."}, "alice"},
	{types.RecipeRequest{Title: "Chana Masala", CuisineType: "indian", CookingTime: 45, Ingredients: "chickpeas, onion, tomato, garam masala", Instructions: "Soften onions, add spices and tomato, simmer chickpeas until thick."}, "alice"},
	{types.RecipeRequest{Title: "Chicken Katsu", CuisineType: "japanese", CookingTime: 30, Ingredients: "chicken breast, panko, egg, cabbage", Instructions: "Bread the cutlets, fry golden, slice over shredded cabbage."}, "alice"},
	{types.RecipeRequest{Title: "Dan Dan Noodles", CuisineType: "chinese", CookingTime: 25, Ingredients: "wheat noodles, sesame paste, chili oil, pork", Instructions: "Make the sauce, boil noodles, top with crispy pork."}, "bob"},
	{types.RecipeRequest{Title: "Palak Paneer", CuisineType: "indian", CookingTime: 40, Ingredients: "spinach, paneer, cream, cumin", Instructions: "Blanch and blend spinach, simmer with spices, fold in paneer."}, "bob"},
	{types.RecipeRequest{Title: "Miso Soup", CuisineType: "japanese", CookingTime: 15, Ingredients: "dashi, miso paste, tofu, wakame", Instructions: "Heat dashi, dissolve miso off the boil, add tofu and wakame."}, "bob"},
	{types.RecipeRequest{Title: "Vegetable Fried Rice", CuisineType: "chinese", CookingTime: 20, Ingredients: "day-old rice, egg, peas, scallion, soy sauce", Instructions: "Scramble egg, fry rice hot and fast, season and toss with scallions."}, "alice"},
	{types.RecipeRequest{Title: "Butter Chicken", CuisineType: "indian", CookingTime: 60, Ingredients: "chicken thigh, yogurt, tomato, butter, cream", Instructions: "Marinate and grill chicken, simmer in buttery tomato sauce."}, "bob"},
	{types.RecipeRequest{Title: "Okonomiyaki", CuisineType: "japanese", CookingTime: 30, Ingredients: "cabbage, flour, egg, bonito flakes", Instructions: "Mix the batter, griddle both sides, dress with sauce and bonito."}, "alice"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	ctx := context.Background()
	authSvc := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, logger)
	recipeSvc := service.NewRecipeService(db, logger)
	favoriteSvc := service.NewFavoriteService(db, nil, logger)

	users := make(map[string]uuid.UUID)
	for _, u := range seedUsers {
		user, _, err := authSvc.Register(ctx, u.username, u.email, u.password)
		if err != nil {
			logger.Fatal("failed to seed user", zap.String("username", u.username), zap.Error(err))
		}
		users[u.username] = user.ID
		logger.Info("seeded user", zap.String("username", u.username))
	}

	for _, r := range seedRecipes {
		recipe, err := recipeSvc.Create(ctx, users[r.owner], &r.RecipeRequest)
		if err != nil {
			logger.Fatal("failed to seed recipe", zap.String("title", r.Title), zap.Error(err))
		}

		// Everyone likes the other person's cooking.
		for username, liker := range users {
			if username == r.owner {
				continue
			}
			if _, _, err := favoriteSvc.Toggle(ctx, recipe.ID, liker); err != nil {
				logger.Fatal("failed to seed favorite", zap.Error(err))
			}
		}
	}

	logger.Info("seed complete",
		zap.Int("users", len(seedUsers)),
		zap.Int("recipes", len(seedRecipes)))
}
