package repository

import (
	"context"
	"time"

	"tailorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesTotals aggregates invoice figures over a date range.
type SalesTotals struct {
	Revenue       string `json:"revenue"`
	InvoiceCount  int64  `json:"invoice_count"`
	ReturnedCount int64  `json:"returned_count"`
}

// ProductRanking ranks products by quantity sold over a date range.
type ProductRanking struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
}

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	List(ctx context.Context, page, limit int) ([]model.Report, int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Report, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Report, error)
	GetSalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error)
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductRanking, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return GetDB(ctx, r.db).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := GetDB(ctx, r.db).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, page, limit int) ([]model.Report, int64, error) {
	var reports []model.Report
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Report, error) {
	var reports []model.Report
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Report, error) {
	var reports []model.Report
	if err := GetDB(ctx, r.db).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetSalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error) {
	var totals SalesTotals

	db := GetDB(ctx, r.db)
	var revenue struct {
		Value string
	}
	if err := db.Table("invoices").
		Select("COALESCE(CAST(SUM(total_price) AS TEXT), '0') as value").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Scan(&revenue).Error; err != nil {
		return totals, err
	}
	totals.Revenue = revenue.Value

	if err := db.Table("invoices").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Count(&totals.InvoiceCount).Error; err != nil {
		return totals, err
	}

	if err := db.Table("invoices").
		Where("returned = ? AND created_at >= ? AND created_at <= ?", true, start, end).
		Count(&totals.ReturnedCount).Error; err != nil {
		return totals, err
	}

	return totals, nil
}

func (r *reportRepository) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductRanking, error) {
	var rankings []ProductRanking
	if err := GetDB(ctx, r.db).Table("invoices").
		Select("products.id as product_id, products.name as product_name, SUM(invoices.item_count) as total_quantity, CAST(SUM(invoices.total_price) AS TEXT) as total_value").
		Joins("JOIN products ON products.id = invoices.product_id").
		Where("invoices.created_at >= ? AND invoices.created_at <= ?", start, end).
		Group("products.id, products.name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, err
	}
	return rankings, nil
}
