package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retrieved is an append-only record of a processed return. The unique index on
// InvoiceID doubles as the "already returned" guard.
type Retrieved struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"invoice_id"`
	Invoice   *Invoice   `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client    *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (r *Retrieved) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
