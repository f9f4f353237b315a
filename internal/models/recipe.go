package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	CuisineType  string         `gorm:"size:50" json:"cuisine_type"`
	CookingTime  int            `gorm:"not null;default:0" json:"cooking_time"`
	Ingredients  string         `gorm:"type:text" json:"ingredients"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
