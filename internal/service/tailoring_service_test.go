package service

import (
	"context"
	"testing"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTailoringTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewTailoringService(repository.NewTailoringRepository(db))
	ctx := context.Background()

	product := &model.Product{
		Name: "Suit", Price: decimal.NewFromInt(300), Stock: 2,
		Color: "black", Size: "L", BarCodeNumber: 4006381333940,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	order := &model.Tailoring{
		ProductID:   product.ID,
		Description: "hem trousers",
		Price:       decimal.NewFromInt(20),
		Status:      model.TailoringRequested,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	id := order.ID.String()

	// Completing a requested order skips a step and must fail.
	if _, err := svc.CompleteOrder(ctx, id); !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest completing a requested order, got %v", err)
	}

	accepted, err := svc.AcceptOrder(ctx, id)
	if err != nil {
		t.Fatalf("AcceptOrder failed: %v", err)
	}
	if accepted.Status != model.TailoringAccepted {
		t.Errorf("status = %s, want accepted", accepted.Status)
	}

	// Accepting twice must fail.
	if _, err := svc.AcceptOrder(ctx, id); !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest accepting twice, got %v", err)
	}

	completed, err := svc.CompleteOrder(ctx, id)
	if err != nil {
		t.Fatalf("CompleteOrder failed: %v", err)
	}
	if completed.Status != model.TailoringCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
}

func TestTailoringListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewTailoringService(repository.NewTailoringRepository(db))
	ctx := context.Background()

	if _, _, err := svc.ListOrders(ctx, "bogus", 1, 10); !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest for bogus status, got %v", err)
	}

	product := &model.Product{
		Name: "Dress", Price: decimal.NewFromInt(150), Stock: 2,
		Color: "blue", Size: "S", BarCodeNumber: 4006381333941,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	for _, status := range []string{model.TailoringRequested, model.TailoringAccepted} {
		order := &model.Tailoring{
			ID: uuid.New(), ProductID: product.ID,
			Description: "fit", Price: decimal.NewFromInt(5), Status: status,
		}
		if err := db.Create(order).Error; err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}
	}

	orders, total, err := svc.ListOrders(ctx, model.TailoringRequested, 1, 10)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Errorf("filtered list = %d orders (total %d), want 1", len(orders), total)
	}
}
