package service

import (
	"context"
	"fmt"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"
)

// NotificationService is the read side of the system message feed
type NotificationService interface {
	ListNotifications(ctx context.Context, notificationType string) ([]model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) ListNotifications(ctx context.Context, notificationType string) ([]model.Notification, error) {
	if notificationType != "" && notificationType != model.NotificationStock && notificationType != model.NotificationTailor {
		return nil, apperr.BadRequestf("invalid notification type: must be stock or tailor")
	}

	notifications, err := s.repo.List(ctx, notificationType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}
