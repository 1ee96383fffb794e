package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartLine is one (user, product) entry in a shopping cart. The composite
// unique index is what lets add-to-cart run as a single upsert instead of a
// racy read-then-write.
type CartLine struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`

	// Always >= 1; a line that would reach zero is deleted instead.
	Quantity int `gorm:"not null" json:"quantity"`

	Product *Product `json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
