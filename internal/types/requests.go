package types

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RecipeRequest struct {
	Title        string `json:"title" binding:"required"`
	CuisineType  string `json:"cuisine_type"`
	CookingTime  int    `json:"cooking_time" binding:"min=0"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// SessionUser is the authenticated identity returned by login and register.
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type AuthResponse struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

type FavoriteToggleResponse struct {
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}

type FavoriteCountResponse struct {
	Count int64 `json:"count"`
}
