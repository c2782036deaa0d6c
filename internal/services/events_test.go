package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_publishEvent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := NewMockKafkaWriter(ctrl)
	svc := &RecipeService{kafkaWriter: mockKafka}

	mockKafka.EXPECT().WriteMessages(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		require.Len(t, msgs, 1)
		assert.Equal(t, "42", string(msgs[0].Key))

		var event models.RecipeEvent
		require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
		assert.Equal(t, models.RecipeCreated, event.Type)
		assert.Equal(t, int64(42), event.RecipeID)
		assert.Equal(t, userID.String(), event.UserID)
		assert.NotEmpty(t, event.EventID)
		return nil
	})
	svc.publishEvent(ctx, models.RecipeCreated, 42, userID)

	// Publish errors are swallowed
	mockKafka.EXPECT().WriteMessages(ctx, gomock.Any()).Return(errors.New("kafka error")).Times(1)
	svc.publishEvent(ctx, models.RecipeDeleted, 42, userID)

	// Kafka writer not configured
	(&RecipeService{}).publishEvent(ctx, models.RecipeDeleted, 42, userID)
}
