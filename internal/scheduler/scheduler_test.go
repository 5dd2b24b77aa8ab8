package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })
	return s
}

func TestRunJobNow(t *testing.T) {
	s := newTestScheduler(t)

	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddCronJob("genre-refresh", "Genre refresh", "reload genres", "0 4 * * *", func(context.Context) error {
		ran <- struct{}{}
		return nil
	}))
	s.Start()

	require.NoError(t, s.RunJobNow("genre-refresh"))
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	assert.Eventually(t, func() bool {
		info, ok := s.GetJob("genre-refresh")
		return ok && info.Status == JobStatusCompleted && info.RunCount == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFailedJobRecordsError(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.AddCronJob("broken", "Broken", "", "0 4 * * *", func(context.Context) error {
		return errors.New("upstream unavailable")
	}))
	s.Start()
	require.NoError(t, s.RunJobNow("broken"))

	assert.Eventually(t, func() bool {
		info, _ := s.GetJob("broken")
		return info.Status == JobStatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	info, _ := s.GetJob("broken")
	assert.Equal(t, 1, info.ErrorCount)
	assert.Equal(t, "upstream unavailable", info.LastError)
}

func TestJobErrors(t *testing.T) {
	s := newTestScheduler(t)

	err := s.RunJobNow("missing")
	require.ErrorIs(t, err, ErrJobNotFound)

	noop := func(context.Context) error { return nil }
	require.NoError(t, s.AddCronJob("a", "A", "", "0 4 * * *", noop))
	require.Error(t, s.AddCronJob("a", "A", "", "0 4 * * *", noop))
	require.Error(t, s.AddCronJob("b", "B", "", "not a cron", noop))
	s.Start()

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, JobStatusScheduled, jobs[0].Status)
	assert.False(t, jobs[0].NextRun.IsZero())
}
