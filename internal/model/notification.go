package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification type enum constants
const (
	NotificationStock  = "stock"
	NotificationTailor = "tailor"
)

// Notification is one entry of the flat system message feed
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"type:varchar(10);not null;index" json:"type"` // stock, tailor
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
