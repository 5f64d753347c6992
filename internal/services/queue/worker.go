package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	job, err := decodeJob(msg.Body)
	if err != nil {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.Int("worker_id", workerID))

	q.updateStatus(ctx, job, models.StatusProcessing)

	result, err := q.processJob(ctx, job)
	if err != nil {
		job.Error = err.Error()
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
		q.updateStatus(ctx, job, models.StatusFailed)
	} else {
		job.Result = result
		q.logger.Info("Job completed successfully",
			zap.String("job_id", job.ID))
		q.updateStatus(ctx, job, models.StatusCompleted)
	}

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

// decodeJob parses a queue message, rejecting bodies without an ID or a
// source.
func decodeJob(body []byte) (*models.StampJob, error) {
	var job models.StampJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, fmt.Errorf("job without id")
	}
	if job.ImageURL == "" && job.ObjectPath == "" {
		return nil, fmt.Errorf("job %s has no source", job.ID)
	}
	return &job, nil
}

func (q *QueueService) updateStatus(ctx context.Context, job *models.StampJob, status string) {
	job.Status = status
	job.UpdatedAt = time.Now()
	if err := q.storage.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to store job status",
			zap.String("job_id", job.ID),
			zap.String("status", status),
			zap.Error(err))
	}
}
