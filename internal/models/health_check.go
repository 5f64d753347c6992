package models

import "time"

// HealthCheck reports backend status plus the watermark the server stamps.
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Font      string            `json:"font"`
	Anchor    Anchor            `json:"anchor"`
	Services  map[string]string `json:"services"`
}
