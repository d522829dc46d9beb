package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/jobs"
)

func TestBuildTaskKnownJobs(t *testing.T) {
	for _, name := range []string{jobs.TaskAlertDigest, jobs.TaskAnalyticsWarmup} {
		task, err := BuildTask(name)
		require.NoError(t, err)
		require.Equal(t, name, task.Type())
	}
}

func TestBuildTaskUnknownJob(t *testing.T) {
	_, err := BuildTask("mail:send")
	require.Error(t, err)
}
