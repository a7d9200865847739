package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// newAccountEvent builds an event stamped with a fresh ID and the current time.
func newAccountEvent(eventType string, userID uuid.UUID) models.AccountEvent {
	return models.AccountEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID.String(),
		Timestamp: time.Now().Unix(),
	}
}

// publishEvent publishes an account event keyed by user ID.
// Publishing is best effort: failures are logged, never returned.
func publishEvent(ctx context.Context, w KafkaWriter, event models.AccountEvent) {
	log := logger.FromContext(ctx)
	if w == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", event.Type)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal account event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish account event to Kafka", "event_id", event.EventID, "type", event.Type, "error", err)
	} else {
		log.Infow("Account event published to Kafka", "event_id", event.EventID, "type", event.Type, "user_id", event.UserID)
	}
}
