package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin      = "admin"
	RoleCashier    = "cashier"
	RoleSeller     = "seller"
	RoleTailor     = "tailor"
	RoleSupervisor = "supervisor"
)

// RoleDefault holds the wallet balance and staff discount a role starts with.
type RoleDefault struct {
	Wallet             decimal.Decimal
	DiscountPercentage decimal.Decimal
}

// RoleDefaults is the policy table for per-role wallet and discount defaults.
// Roles not listed here start with zero wallet and no staff discount.
var RoleDefaults = map[string]RoleDefault{
	RoleCashier:    {Wallet: decimal.NewFromInt(500), DiscountPercentage: decimal.NewFromInt(30)},
	RoleSupervisor: {Wallet: decimal.NewFromInt(750), DiscountPercentage: decimal.NewFromInt(35)},
}

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleSeller, RoleTailor, RoleSupervisor:
		return true
	}
	return false
}

// DefaultsForRole returns the wallet/discount defaults for a role.
func DefaultsForRole(role string) RoleDefault {
	if d, ok := RoleDefaults[role]; ok {
		return d
	}
	return RoleDefault{Wallet: decimal.Zero, DiscountPercentage: decimal.Zero}
}

// User represents a staff member of the shop
type User struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string          `gorm:"type:varchar(255);not null" json:"name"`
	EmployeeCode       string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"employee_code"`
	Email              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password           string          `gorm:"type:varchar(255);not null" json:"-"`
	Phone              string          `gorm:"type:varchar(20);not null" json:"phone"`
	Role               string          `gorm:"type:varchar(20);not null;index" json:"role"` // admin, cashier, seller, tailor, supervisor
	Wallet             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"wallet"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`
	DOB                time.Time       `gorm:"type:date;not null" json:"dob"`
	ImageURL           string          `gorm:"type:text" json:"image_url"`
	ImagePublicID      string          `gorm:"type:varchar(255)" json:"-"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
