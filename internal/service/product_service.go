package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"tailorpos/internal/imagestore"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Categories    []string        `json:"categories" binding:"required,min=1"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	IsDiscount    bool            `json:"is_discount"`
	Discount      decimal.Decimal `json:"discount"`
	Stock         int             `json:"stock" binding:"gte=0"`
	Color         string          `json:"color" binding:"required"`
	Size          string          `json:"size" binding:"required"`
	BarCodeNumber int64           `json:"bar_code_number" binding:"required"`
	Image         string          `json:"image"` // base64 payload, optional
}

type UpdateProductRequest struct {
	Name       string           `json:"name"`
	Categories []string         `json:"categories"`
	Price      *decimal.Decimal `json:"price"`
	IsDiscount *bool            `json:"is_discount"`
	Discount   *decimal.Decimal `json:"discount"`
	StockDelta *int             `json:"stock_delta"` // signed adjustment, not an absolute value
	Color      string           `json:"color"`
	Size       string           `json:"size"`
	Image      string           `json:"image"`
}

// ProductPricing shows the list price next to the effective price after the
// product discount. The after value is rounded to two decimal places.
type ProductPricing struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Before      decimal.Decimal `json:"price_before_discount"`
	After       decimal.Decimal `json:"price_after_discount"`
}

// qrPayload is what gets encoded into the product QR image.
type qrPayload struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Discount   string    `json:"discount,omitempty"`
	Stock      int       `json:"stock"`
	Color      string    `json:"color"`
	Size       string    `json:"size"`
	BarCode    int64     `json:"bar_code_number"`
	Categories []string  `json:"categories"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// ProductService manages the sellable catalog
type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	PriceBeforeAndAfterDiscount(ctx context.Context, id string) (*ProductPricing, error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     imagestore.Store
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, images imagestore.Store) ProductService {
	return &productService{repo: repo, categories: categories, images: images}
}

// validateCategories checks every requested category name against the catalog.
func (s *productService) validateCategories(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := s.categories.FindByName(ctx, name); err != nil {
			return apperr.BadRequestf("unknown category: %s", name)
		}
	}
	return nil
}

func validateDiscount(isDiscount bool, discount decimal.Decimal) error {
	if !isDiscount {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return apperr.BadRequestf("discount must be between 0 and 100")
	}
	return nil
}

func generateQRCode(product *model.Product) (string, error) {
	p := qrPayload{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price.StringFixed(2),
		Stock:      product.Stock,
		Color:      product.Color,
		Size:       product.Size,
		BarCode:    product.BarCodeNumber,
		Categories: product.CategoryNames(),
		ImageURL:   product.ImageURL,
	}
	if product.IsDiscount {
		p.Discount = product.Discount.StringFixed(2)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if !req.Price.IsPositive() {
		return nil, apperr.BadRequestf("price must be greater than zero")
	}
	if err := validateDiscount(req.IsDiscount, req.Discount); err != nil {
		return nil, err
	}
	if err := s.validateCategories(ctx, req.Categories); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          req.Name,
		Price:         req.Price,
		IsDiscount:    req.IsDiscount,
		Discount:      req.Discount,
		Stock:         req.Stock,
		Color:         req.Color,
		Size:          req.Size,
		BarCodeNumber: req.BarCodeNumber,
	}
	for _, name := range req.Categories {
		product.Categories = append(product.Categories, model.ProductCategory{CategoryName: name})
	}

	if req.Image != "" {
		data, err := imagestore.DecodeBase64(req.Image)
		if err != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		img, err := s.images.Upload("products", "product.png", data)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload product image", err)
		}
		product.ImageURL = img.URL
		product.ImagePublicID = img.PublicID
	}

	// The QR payload includes the generated id, so assign it up front.
	product.ID = uuid.New()
	qr, err := generateQRCode(product)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate product QR code", err)
	}
	product.QRCode = qr

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("a product with this bar code already exists")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid product id")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFoundf("product not found")
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	products, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid product id")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFoundf("product not found")
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperr.BadRequestf("price must be greater than zero")
		}
		product.Price = *req.Price
	}
	if req.IsDiscount != nil {
		product.IsDiscount = *req.IsDiscount
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if err := validateDiscount(product.IsDiscount, product.Discount); err != nil {
		return nil, err
	}
	if req.StockDelta != nil {
		newStock := product.Stock + *req.StockDelta
		if newStock < 0 {
			return nil, apperr.BadRequestf("stock adjustment would drop below zero")
		}
		product.Stock = newStock
	}
	if req.Color != "" {
		product.Color = req.Color
	}
	if req.Size != "" {
		product.Size = req.Size
	}

	if req.Categories != nil {
		if err := s.validateCategories(ctx, req.Categories); err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceCategories(ctx, product.ID, req.Categories); err != nil {
			return nil, fmt.Errorf("failed to replace product categories: %w", err)
		}
		product.Categories = nil
		for _, name := range req.Categories {
			product.Categories = append(product.Categories, model.ProductCategory{ProductID: product.ID, CategoryName: name})
		}
	}

	if req.Image != "" {
		data, decErr := imagestore.DecodeBase64(req.Image)
		if decErr != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		if product.ImagePublicID != "" {
			if err := s.images.Destroy(product.ImagePublicID); err != nil {
				return nil, apperr.Wrap(apperr.Internal, "failed to replace product image", err)
			}
		}
		img, upErr := s.images.Upload("products", "product.png", data)
		if upErr != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload product image", upErr)
		}
		product.ImageURL = img.URL
		product.ImagePublicID = img.PublicID
	}

	// Name, price or categories may have changed, regenerate the QR payload.
	qr, err := generateQRCode(product)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to regenerate product QR code", err)
	}
	product.QRCode = qr

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return apperr.BadRequestf("invalid product id")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return apperr.NotFoundf("product not found")
	}

	if product.ImagePublicID != "" {
		if err := s.images.Destroy(product.ImagePublicID); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to remove product image", err)
		}
	}

	return s.repo.Delete(ctx, productID)
}

func (s *productService) PriceBeforeAndAfterDiscount(ctx context.Context, id string) (*ProductPricing, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid product id")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFoundf("product not found")
	}

	return &ProductPricing{
		ProductID:   product.ID,
		ProductName: product.Name,
		Before:      product.Price,
		After:       product.UnitPrice().Round(2),
	}, nil
}
