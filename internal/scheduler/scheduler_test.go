package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"testhub/internal/pkg/config"
)

type fakePurger struct {
	calls int
	err   error
}

func (f *fakePurger) PurgeExpiredSessions() (int64, error) {
	f.calls++
	return 3, f.err
}

type fakeCounter struct {
	calls int
}

func (f *fakeCounter) CountExpiredUnused() (int64, error) {
	f.calls++
	return 1, nil
}

func TestSweepSessions(t *testing.T) {
	purger := &fakePurger{}
	counter := &fakeCounter{}
	s := NewScheduler(zap.NewNop(), purger, counter)

	s.SweepSessions()
	assert.Equal(t, 1, purger.calls)
	assert.Equal(t, 1, counter.calls)

	purger.err = errors.New("db down")
	s.SweepSessions()
	assert.Equal(t, 2, purger.calls)
	assert.Equal(t, 1, counter.calls, "invitation count skipped after purge failure")
}

func TestStart(t *testing.T) {
	s := NewScheduler(zap.NewNop(), &fakePurger{}, &fakeCounter{})
	require.NoError(t, s.Start(&config.SchedulerConfig{Enabled: false}))
	assert.Empty(t, s.Entries())

	require.NoError(t, s.Start(&config.SchedulerConfig{Enabled: true, SessionSweep: "0 0 3 * * *"}))
	assert.Contains(t, s.Entries(), "session_sweep")
	s.Stop()

	bad := NewScheduler(zap.NewNop(), &fakePurger{}, &fakeCounter{})
	assert.Error(t, bad.Start(&config.SchedulerConfig{Enabled: true, SessionSweep: "not a cron"}))
}
