package models

import "time"

// StampJob is a queued request to stamp a remote image. Exactly one of
// ImageURL and ObjectPath is set.
type StampJob struct {
	ID         string        `json:"id"`
	ImageURL   string        `json:"image_url,omitempty"`
	ObjectPath string        `json:"object_path,omitempty"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Result     *StampedImage `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// StampJobRequest is the body accepted by the job submission endpoint.
type StampJobRequest struct {
	ImageURL   string `json:"image_url" binding:"omitempty,url"`
	ObjectPath string `json:"object_path"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
