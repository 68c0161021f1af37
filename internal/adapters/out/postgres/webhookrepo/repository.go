package webhookrepo

import (
	"context"
	"fmt"

	"checkout/internal/core/domain/model/webhook"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWebhookEventRepository implements ports.WebhookEventRepository. Events
// carry no domain events, so nothing is tracked.
type GormWebhookEventRepository struct {
	db *gorm.DB
}

func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

func (r *GormWebhookEventRepository) Add(ctx context.Context, e *webhook.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("record webhook event %d: %w", e.ID(), err)
	}
	return nil
}

func (r *GormWebhookEventRepository) Update(ctx context.Context, e *webhook.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", dto.ID).
		Select("event_type", "external_id", "disposition", "last_error", "attempts", "processed_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("webhook event", e.ID())
	}
	return nil
}

// ListRetryable returns failed events with fewer than maxAttempts attempts,
// oldest first.
func (r *GormWebhookEventRepository) ListRetryable(
	ctx context.Context,
	maxAttempts, limit int,
) ([]*webhook.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("disposition = ? AND attempts < ?", webhook.Failed.String(), maxAttempts).
		Order("received_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*webhook.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}
	return events, nil
}
