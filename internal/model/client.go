package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender enum constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// CardType enum constants
const (
	CardTypeVisa       = "Visa"
	CardTypeMasterCard = "MasterCard"
)

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// ValidCardType reports whether t is a supported card network.
func ValidCardType(t string) bool {
	return t == CardTypeVisa || t == CardTypeMasterCard
}

// Client represents a shop customer, looked up by phone at the counter
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Gender    string    `gorm:"type:varchar(10)" json:"gender,omitempty"` // male, female or empty
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CardInfo is the single stored payment card for a client
type CardInfo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Client     Client    `gorm:"foreignKey:ClientID" json:"-"`
	CardNumber string    `gorm:"type:varchar(16);not null" json:"card_number"`
	CVV        string    `gorm:"type:varchar(3);not null" json:"-"`
	ExpiryDate time.Time `gorm:"type:date;not null" json:"expiry_date"`
	CardType   string    `gorm:"type:varchar(20);not null" json:"card_type"` // Visa, MasterCard
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *CardInfo) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
