package repository

import (
	"context"

	"tailorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetrievedRepository interface {
	Create(ctx context.Context, retrieved *model.Retrieved) error
	List(ctx context.Context, page, limit int) ([]model.Retrieved, int64, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.Retrieved, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID) ([]model.Retrieved, error)
}

type retrievedRepository struct {
	db *gorm.DB
}

func NewRetrievedRepository(db *gorm.DB) RetrievedRepository {
	return &retrievedRepository{db: db}
}

func (r *retrievedRepository) Create(ctx context.Context, retrieved *model.Retrieved) error {
	return GetDB(ctx, r.db).Create(retrieved).Error
}

func (r *retrievedRepository) List(ctx context.Context, page, limit int) ([]model.Retrieved, int64, error) {
	var records []model.Retrieved
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Retrieved{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Preload("Invoice").Preload("User").Preload("Client").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *retrievedRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.Retrieved, error) {
	var record model.Retrieved
	if err := GetDB(ctx, r.db).
		Preload("Product").Preload("Invoice").Preload("User").Preload("Client").
		First(&record, "invoice_id = ?", invoiceID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *retrievedRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]model.Retrieved, error) {
	var records []model.Retrieved
	if err := GetDB(ctx, r.db).
		Preload("Product").Preload("Invoice").Preload("User").Preload("Client").
		Where("client_id = ?", clientID).
		Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
