package queue

import "fmt"

// Stats is a point-in-time view of the stamping queue.
type Stats struct {
	Name      string `json:"name"`
	Messages  int    `json:"messages"`
	Consumers int    `json:"consumers"`
}

func (q *QueueService) GetQueueStats() (*Stats, error) {
	info, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue %s: %w", q.queueName, err)
	}
	return &Stats{
		Name:      info.Name,
		Messages:  info.Messages,
		Consumers: info.Consumers,
	}, nil
}

// HealthCheck reports the broker connection state; a nil service is
// "not configured".
func (q *QueueService) HealthCheck() string {
	switch {
	case q == nil:
		return "not configured"
	case q.conn == nil || q.conn.IsClosed():
		return "unhealthy: connection closed"
	case q.channel == nil:
		return "unhealthy: channel not available"
	}
	return "healthy"
}
