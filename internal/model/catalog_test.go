package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUnitPrice(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(100)}
	if !p.UnitPrice().Equal(decimal.NewFromInt(100)) {
		t.Errorf("unit price without discount = %s, want 100", p.UnitPrice())
	}

	// A discount set but not enabled does not apply.
	p.Discount = decimal.NewFromInt(50)
	if !p.UnitPrice().Equal(decimal.NewFromInt(100)) {
		t.Errorf("unit price with disabled discount = %s, want 100", p.UnitPrice())
	}

	p.IsDiscount = true
	if !p.UnitPrice().Equal(decimal.NewFromInt(50)) {
		t.Errorf("unit price at 50%% = %s, want 50", p.UnitPrice())
	}

	p.Discount = decimal.NewFromInt(100)
	if !p.UnitPrice().IsZero() {
		t.Errorf("unit price at 100%% = %s, want 0", p.UnitPrice())
	}

	p.Discount = decimal.Zero
	if !p.UnitPrice().Equal(decimal.NewFromInt(100)) {
		t.Errorf("unit price at 0%% = %s, want 100", p.UnitPrice())
	}
}

func TestCategoryNames(t *testing.T) {
	p := Product{Categories: []ProductCategory{
		{CategoryName: "jackets"},
		{CategoryName: "outerwear"},
	}}
	names := p.CategoryNames()
	if len(names) != 2 || names[0] != "jackets" || names[1] != "outerwear" {
		t.Errorf("CategoryNames() = %v", names)
	}
}
