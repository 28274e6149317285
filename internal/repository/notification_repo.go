package repository

import (
	"context"

	"tailorpos/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context, notificationType string) ([]model.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return GetDB(ctx, r.db).Create(notification).Error
}

func (r *notificationRepository) List(ctx context.Context, notificationType string) ([]model.Notification, error) {
	var notifications []model.Notification
	db := GetDB(ctx, r.db)
	if notificationType != "" {
		db = db.Where("type = ?", notificationType)
	}
	if err := db.Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
