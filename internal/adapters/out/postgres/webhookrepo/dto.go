// Package webhookrepo stores every webhook call received from the payment
// gateway together with how it was disposed of.
package webhookrepo

import (
	"time"

	"checkout/internal/core/domain/model/webhook"
)

type EventDTO struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"`
	EventType   string
	ExternalID  string
	Body        []byte `gorm:"type:bytea;not null"`
	Disposition string `gorm:"index:idx_webhook_events_disposition,priority:1;not null"`
	LastError   string
	Attempts    int `gorm:"index:idx_webhook_events_disposition,priority:2"`
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

func (EventDTO) TableName() string {
	return "webhook_events"
}

func fromDomain(e *webhook.Event) EventDTO {
	return EventDTO{
		ID:          e.ID(),
		EventType:   e.EventType(),
		ExternalID:  e.ExternalID(),
		Body:        e.Body(),
		Disposition: e.Disposition().String(),
		LastError:   e.LastError(),
		Attempts:    e.Attempts(),
		ReceivedAt:  e.ReceivedAt(),
		ProcessedAt: e.ProcessedAt(),
	}
}

func toDomain(dto EventDTO) (*webhook.Event, error) {
	disposition, err := webhook.ParseDisposition(dto.Disposition)
	if err != nil {
		return nil, err
	}
	return webhook.RestoreEvent(webhook.State{
		ID:          dto.ID,
		EventType:   dto.EventType,
		ExternalID:  dto.ExternalID,
		Body:        dto.Body,
		Disposition: disposition,
		LastError:   dto.LastError,
		Attempts:    dto.Attempts,
		ReceivedAt:  dto.ReceivedAt,
		ProcessedAt: dto.ProcessedAt,
	})
}
