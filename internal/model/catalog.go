package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products under a unique display name
type Category struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ImageURL      string    `gorm:"type:text" json:"image_url"`
	ImagePublicID string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product is one sellable article. A product belongs to categories by name;
// the names are validated against the categories table before persisting.
type Product struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string            `gorm:"type:varchar(255);not null;index" json:"name"`
	Categories    []ProductCategory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"categories"`
	Price         decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"price"`
	IsDiscount    bool              `gorm:"not null;default:false" json:"is_discount"`
	Discount      decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0" json:"discount"` // percentage, applied only when is_discount
	Stock         int               `gorm:"not null;default:0" json:"stock"`
	Color         string            `gorm:"type:varchar(50);not null" json:"color"`
	Size          string            `gorm:"type:varchar(20);not null" json:"size"`
	BarCodeNumber int64             `gorm:"uniqueIndex;not null" json:"bar_code_number"`
	ImageURL      string            `gorm:"type:text" json:"image_url"`
	ImagePublicID string            `gorm:"type:varchar(255)" json:"-"`
	QRCode        string            `gorm:"type:text" json:"qr_code,omitempty"` // base64 PNG of the product QR payload
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CategoryNames flattens the join rows for responses and the QR payload.
func (p *Product) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.CategoryName)
	}
	return names
}

// UnitPrice is the effective per-item price after the product discount, if any.
func (p *Product) UnitPrice() decimal.Decimal {
	if !p.IsDiscount {
		return p.Price
	}
	hundred := decimal.NewFromInt(100)
	return p.Price.Sub(p.Price.Mul(p.Discount).Div(hundred))
}

// ProductCategory links a product to a category by name
type ProductCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CategoryName string    `gorm:"type:varchar(100);not null;index" json:"name"`
}

func (pc *ProductCategory) BeforeCreate(*gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}
