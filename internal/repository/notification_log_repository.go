package repository

import (
	"context"

	"gorm.io/gorm"

	"carebook/internal/model"
)

// NotificationLogRepository defines delivery audit persistence.
type NotificationLogRepository interface {
	Create(ctx context.Context, log *model.NotificationLog) error
	CreateBatch(ctx context.Context, logs []model.NotificationLog) error
}

type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository.
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

// Create records a single delivery attempt.
func (r *notificationLogRepository) Create(ctx context.Context, log *model.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch records multiple delivery attempts in a single statement.
func (r *notificationLogRepository) CreateBatch(ctx context.Context, logs []model.NotificationLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}
