package queue

import (
	"fmt"

	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
	"github.com/phambaophuc/copyright-stamp/internal/services/storage"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const QueueName = "image_stamping"

type QueueService struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	logger      *zap.Logger
	queueName   string
	processor   *processor.ImageProcessor
	storage     *storage.StorageService
	maxFileSize int64
}

func NewQueueService(
	rabbitmqURL string,
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	maxFileSize int64,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// One unacked stamp job per consumer.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	_, err = channel.QueueDeclare(
		QueueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &QueueService{
		conn:        conn,
		channel:     channel,
		logger:      logger,
		queueName:   QueueName,
		processor:   processor,
		storage:     storage,
		maxFileSize: maxFileSize,
	}, nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
