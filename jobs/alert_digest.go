package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/libreta-app/libreta/internal/alerts"
	"github.com/libreta-app/libreta/internal/auth"
	jobmetrics "github.com/libreta-app/libreta/internal/jobs"
	"github.com/libreta-app/libreta/internal/shared"
)

// UserSource lists the accounts a fan-out job iterates. Satisfied by
// the auth service.
type UserSource interface {
	ListUsers(ctx context.Context) ([]auth.User, error)
}

// AlertDigestJob scans each user's pending backlog and logs the
// rendered payment alerts.
type AlertDigestJob struct {
	Alerts  *alerts.Service
	Users   UserSource
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewAlertDigestJob wires dependencies for the digest handler.
func NewAlertDigestJob(alertsSvc *alerts.Service, users UserSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *AlertDigestJob {
	return &AlertDigestJob{Alerts: alertsSvc, Users: users, Logger: logger, Metrics: metrics}
}

// Handle processes TaskAlertDigest tasks.
func (j *AlertDigestJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Alerts == nil || j.Users == nil {
		return errors.New("alert digest: handler not configured")
	}
	var payload AlertDigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskAlertDigest)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	users, err := j.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if payload.UserID != 0 && u.ID != payload.UserID {
			continue
		}
		report, err := j.Alerts.Report(ctx, shared.Scope{UserID: u.ID})
		if err != nil {
			resultErr = errors.Join(resultErr, err)
			continue
		}
		for _, alert := range report.Alerts {
			j.Metrics.AddAlerts(string(alert.Level), 1)
			j.logger().Info("payment digest",
				slog.String("username", u.Username),
				slog.String("level", string(alert.Level)),
				slog.String("title", alert.Title),
				slog.String("message", alert.Message),
			)
		}
	}
	return resultErr
}

func (j *AlertDigestJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
