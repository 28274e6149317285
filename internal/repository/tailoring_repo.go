package repository

import (
	"context"

	"tailorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TailoringRepository interface {
	Create(ctx context.Context, tailoring *model.Tailoring) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tailoring, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Tailoring, int64, error)
	Update(ctx context.Context, tailoring *model.Tailoring) error
}

type tailoringRepository struct {
	db *gorm.DB
}

func NewTailoringRepository(db *gorm.DB) TailoringRepository {
	return &tailoringRepository{db: db}
}

func (r *tailoringRepository) Create(ctx context.Context, tailoring *model.Tailoring) error {
	return GetDB(ctx, r.db).Create(tailoring).Error
}

func (r *tailoringRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tailoring, error) {
	var tailoring model.Tailoring
	if err := GetDB(ctx, r.db).
		Preload("Product").Preload("Client").
		First(&tailoring, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tailoring, nil
}

func (r *tailoringRepository) List(ctx context.Context, status string, page, limit int) ([]model.Tailoring, int64, error) {
	var orders []model.Tailoring
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Tailoring{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Preload("Client").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *tailoringRepository) Update(ctx context.Context, tailoring *model.Tailoring) error {
	return GetDB(ctx, r.db).Save(tailoring).Error
}
