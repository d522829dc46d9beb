package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/libreta-app/libreta/internal/analytics"
	jobmetrics "github.com/libreta-app/libreta/internal/jobs"
	"github.com/libreta-app/libreta/internal/shared"
)

// AnalyticsWarmupJob pre-populates the month-to-date dashboard cache so
// the first morning request is served warm.
type AnalyticsWarmupJob struct {
	Analytics *analytics.Service
	Users     UserSource
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewAnalyticsWarmupJob wires dependencies for the warmup handler.
func NewAnalyticsWarmupJob(analyticsSvc *analytics.Service, users UserSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{
		Analytics: analyticsSvc,
		Users:     users,
		Logger:    logger,
		Metrics:   metrics,
		clock:     time.Now,
	}
}

// Handle processes TaskAnalyticsWarmup tasks.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Analytics == nil || j.Users == nil {
		return errors.New("analytics warmup: handler not configured")
	}
	var payload AnalyticsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskAnalyticsWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	now := j.clock()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	users, err := j.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	warmed := 0
	for _, u := range users {
		if _, err := j.Analytics.GetDashboard(ctx, shared.Scope{UserID: u.ID}, &first, &today); err != nil {
			resultErr = errors.Join(resultErr, err)
			continue
		}
		warmed++
	}
	if payload.IncludeAdmin {
		if _, err := j.Analytics.GetDashboard(ctx, shared.Scope{IsAdmin: true}, &first, &today); err != nil {
			resultErr = errors.Join(resultErr, err)
		} else {
			warmed++
		}
	}

	j.logger().Info("analytics warmup finished", slog.Int("dashboards", warmed))
	return resultErr
}

func (j *AnalyticsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
