package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is read-only from the API's perspective; rows come from fixtures
// or future tooling.
type Review struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Content   string    `json:"content"`
	Rating    int       `gorm:"not null" json:"rating"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ProductID string    `gorm:"index;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
