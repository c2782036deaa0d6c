package services

//go:generate mockgen -source=events.go -destination=mock_events.go -package=services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishEvent publishes a recipe event to Kafka. Failures are logged only.
func (s *RecipeService) publishEvent(ctx context.Context, eventType string, recipeID int64, userID uuid.UUID) {
	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		RecipeID:  recipeID,
		UserID:    userID.String(),
		Timestamp: time.Now().Unix(),
	}

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal recipe event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(recipeID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish recipe event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Recipe event published to Kafka", "event_id", event.EventID, "type", eventType, "recipe_id", recipeID)
	}
}
