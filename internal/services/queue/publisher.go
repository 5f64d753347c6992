package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// NewJob builds a pending job record for req.
func NewJob(req models.StampJobRequest) *models.StampJob {
	now := time.Now()
	return &models.StampJob{
		ID:         uuid.New().String(),
		ImageURL:   req.ImageURL,
		ObjectPath: req.ObjectPath,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// PublishJob records job as pending and publishes it to the stamping queue.
func (q *QueueService) PublishJob(ctx context.Context, job *models.StampJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.storage.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("failed to record job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    job.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue", zap.String("job_id", job.ID))
	return nil
}
