package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAlertDigest scans every user's pending backlog and logs a
	// payment digest.
	TaskAlertDigest = "alerts:payment_digest"
	// TaskAnalyticsWarmup pre-populates the dashboard cache.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// AlertDigestPayload narrows a digest run to one user. Zero means every
// user.
type AlertDigestPayload struct {
	UserID int64 `json:"user_id,omitempty"`
}

// AnalyticsWarmupPayload controls what the warmup run covers.
type AnalyticsWarmupPayload struct {
	// IncludeAdmin also warms the administrator (all users) dashboard.
	IncludeAdmin bool `json:"include_admin,omitempty"`
}

// NewAlertDigestTask constructs an Asynq task for the payment digest.
func NewAlertDigestTask(payload AlertDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAlertDigest, data), nil
}

// NewAnalyticsWarmupTask constructs an Asynq task for the cache warmup.
func NewAnalyticsWarmupTask(payload AnalyticsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, data), nil
}
