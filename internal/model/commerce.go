package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod enum constants. Wallet is only valid for staff self-purchases.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentWallet = "wallet"
)

// Tailoring status enum constants
const (
	TailoringRequested = "requested"
	TailoringAccepted  = "accepted"
	TailoringCompleted = "completed"
)

// Invoice records one completed purchase. The total is fixed at creation time
// and never recomputed. ClientID is nil for staff self-purchases.
type Invoice struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNo  string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"invoice_no"` // 6-char human-readable number
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ClientID   *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	Client     *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ItemCount  int             `gorm:"not null" json:"item_count"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`
	Tailored   bool            `gorm:"not null;default:false" json:"tailored"`
	Returned   bool            `gorm:"not null;default:false" json:"returned"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Transaction is the payment-method record linked 1:1 to an invoice
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"invoice_id"`
	Invoice       *Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        *Client   `gorm:"foreignKey:ClientID" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"-"`
	PaymentMethod string    `gorm:"type:varchar(10);not null" json:"payment_method"` // cash, card
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Tailoring is a custom alteration sub-order attached to a purchased product.
// ClientID is nil when the alteration belongs to a staff self-purchase.
type Tailoring struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	Client      *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Status      string          `gorm:"type:varchar(20);not null;default:'requested';index" json:"status"` // requested, accepted, completed
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (t *Tailoring) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
