package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Report is a denormalized audit snapshot of one commerce event, written at the
// moment of sale so audit reads need no joins. It is never reconciled afterwards.
type Report struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName       string          `gorm:"type:varchar(255);not null" json:"user_name"`
	InvoiceNo      string          `gorm:"type:varchar(10);not null;index" json:"invoice_no"`
	BuyingDate     time.Time       `gorm:"not null" json:"buying_date"`
	PaymentMethod  string          `gorm:"type:varchar(10);not null" json:"payment_method"`
	ProductName    string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"product_price"`
	ClientName     string          `gorm:"type:varchar(255)" json:"client_name,omitempty"`
	ClientPhone    string          `gorm:"type:varchar(20)" json:"client_phone,omitempty"`
	Tailored       bool            `gorm:"not null;default:false" json:"tailored"`
	TailoringPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tailoring_price"`
	ItemCount      int             `gorm:"not null" json:"item_count"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
