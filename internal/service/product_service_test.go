package service

import (
	"context"
	"encoding/base64"
	"testing"

	"tailorpos/internal/imagestore"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (ProductService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	images := imagestore.NewDiskStore(t.TempDir(), "/static")
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		images,
	)
	return svc, db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	if err := db.Create(&model.Category{Name: name}).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
}

func TestCreateProductValidatesCategories(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "jackets")

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Wool Coat",
		Categories:    []string{"jackets", "nonexistent"},
		Price:         decimal.NewFromInt(120),
		Stock:         5,
		Color:         "grey",
		Size:          "L",
		BarCodeNumber: 4006381333932,
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest for unknown category, got %v", err)
	}
}

func TestCreateProductGeneratesQRCode(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "jackets")

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Wool Coat",
		Categories:    []string{"jackets"},
		Price:         decimal.NewFromInt(120),
		Stock:         5,
		Color:         "grey",
		Size:          "L",
		BarCodeNumber: 4006381333933,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if product.QRCode == "" {
		t.Fatal("expected a QR code")
	}
	png, err := base64.StdEncoding.DecodeString(product.QRCode)
	if err != nil {
		t.Fatalf("QR code is not valid base64: %v", err)
	}
	if len(png) < 8 || png[1] != 'P' || png[2] != 'N' || png[3] != 'G' {
		t.Error("QR payload is not a PNG image")
	}
}

func TestPriceBeforeAndAfterDiscountRounding(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "shirts")

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Oxford Shirt",
		Categories:    []string{"shirts"},
		Price:         decimal.NewFromFloat(19.99),
		IsDiscount:    true,
		Discount:      decimal.NewFromInt(33),
		Stock:         10,
		Color:         "white",
		Size:          "M",
		BarCodeNumber: 4006381333934,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	pricing, err := svc.PriceBeforeAndAfterDiscount(context.Background(), product.ID.String())
	if err != nil {
		t.Fatalf("PriceBeforeAndAfterDiscount failed: %v", err)
	}

	if !pricing.Before.Equal(decimal.NewFromFloat(19.99)) {
		t.Errorf("before = %s, want 19.99", pricing.Before)
	}
	// 19.99 * 0.67 = 13.3933, rounded to 13.39
	if !pricing.After.Equal(decimal.NewFromFloat(13.39)) {
		t.Errorf("after = %s, want 13.39", pricing.After)
	}
}

func TestPriceWithoutDiscount(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "shirts")

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Plain Tee",
		Categories:    []string{"shirts"},
		Price:         decimal.NewFromInt(25),
		Stock:         10,
		Color:         "black",
		Size:          "S",
		BarCodeNumber: 4006381333935,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	pricing, err := svc.PriceBeforeAndAfterDiscount(context.Background(), product.ID.String())
	if err != nil {
		t.Fatalf("PriceBeforeAndAfterDiscount failed: %v", err)
	}
	if !pricing.Before.Equal(pricing.After) {
		t.Errorf("before %s != after %s for an undiscounted product", pricing.Before, pricing.After)
	}
}

func TestCreateProductRejectsInvalidDiscount(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "shirts")

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Bad Discount",
		Categories:    []string{"shirts"},
		Price:         decimal.NewFromInt(25),
		IsDiscount:    true,
		Discount:      decimal.NewFromInt(101),
		Stock:         10,
		Color:         "red",
		Size:          "M",
		BarCodeNumber: 4006381333936,
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest for discount above 100, got %v", err)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	svc, db := newProductService(t)
	seedCategory(t, db, "shirts")

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          "Scarce Item",
		Categories:    []string{"shirts"},
		Price:         decimal.NewFromInt(25),
		Stock:         3,
		Color:         "green",
		Size:          "M",
		BarCodeNumber: 4006381333937,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	down := -5
	_, err = svc.UpdateProduct(context.Background(), product.ID.String(), UpdateProductRequest{StockDelta: &down})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest when stock would go negative, got %v", err)
	}

	up := 4
	updated, err := svc.UpdateProduct(context.Background(), product.ID.String(), UpdateProductRequest{StockDelta: &up})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Stock != 7 {
		t.Errorf("stock = %d, want 7", updated.Stock)
	}
}
