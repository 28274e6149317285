package service

import (
	"context"
	"fmt"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
)

// TailoringService drives the alteration workshop workflow:
// requested -> accepted -> completed, one step at a time.
type TailoringService interface {
	GetOrderByID(ctx context.Context, id string) (*model.Tailoring, error)
	ListOrders(ctx context.Context, status string, page, limit int) ([]model.Tailoring, int64, error)
	AcceptOrder(ctx context.Context, id string) (*model.Tailoring, error)
	CompleteOrder(ctx context.Context, id string) (*model.Tailoring, error)
}

type tailoringService struct {
	repo repository.TailoringRepository
}

func NewTailoringService(repo repository.TailoringRepository) TailoringService {
	return &tailoringService{repo: repo}
}

func (s *tailoringService) GetOrderByID(ctx context.Context, id string) (*model.Tailoring, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid tailoring order id")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperr.NotFoundf("tailoring order not found")
	}
	return order, nil
}

func (s *tailoringService) ListOrders(ctx context.Context, status string, page, limit int) ([]model.Tailoring, int64, error) {
	if status != "" && status != model.TailoringRequested && status != model.TailoringAccepted && status != model.TailoringCompleted {
		return nil, 0, apperr.BadRequestf("invalid status filter: must be requested, accepted or completed")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	orders, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tailoring orders: %w", err)
	}
	return orders, total, nil
}

func (s *tailoringService) AcceptOrder(ctx context.Context, id string) (*model.Tailoring, error) {
	return s.transition(ctx, id, model.TailoringRequested, model.TailoringAccepted)
}

func (s *tailoringService) CompleteOrder(ctx context.Context, id string) (*model.Tailoring, error) {
	return s.transition(ctx, id, model.TailoringAccepted, model.TailoringCompleted)
}

func (s *tailoringService) transition(ctx context.Context, id, from, to string) (*model.Tailoring, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid tailoring order id")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperr.NotFoundf("tailoring order not found")
	}

	if order.Status != from {
		return nil, apperr.BadRequestf("order is %s, cannot move to %s", order.Status, to)
	}

	order.Status = to
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update tailoring order: %w", err)
	}

	return order, nil
}
