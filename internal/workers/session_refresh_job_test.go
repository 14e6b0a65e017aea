// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRefresher counts RefreshIfExpiring calls.
type spyRefresher struct {
	calls atomic.Int64
	err   error
}

func (s *spyRefresher) RefreshIfExpiring(context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestNewSessionRefreshJob_ImplementsWorker(t *testing.T) {
	job := NewSessionRefreshJob(&spyRefresher{}, time.Second, logger.Nop())
	require.NotNil(t, job)

	var _ Worker = job
}

func TestSessionRefreshJob_Start_Refreshes(t *testing.T) {
	spy := &spyRefresher{}
	job := NewSessionRefreshJob(spy, 10*time.Millisecond, logger.Nop())

	// 10ms interval gives about five ticks in 55ms
	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "RefreshIfExpiring should run several times, ran: %d", got)
}

func TestSessionRefreshJob_ErrorsDoNotStopTheLoop(t *testing.T) {
	spy := &spyRefresher{err: errors.New("network down")}
	job := NewSessionRefreshJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	time.Sleep(45 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}

func TestSessionRefreshJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRefresher{}
	job := NewSessionRefreshJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls expected after Stop")
}

func TestSessionRefreshJob_ContextCancelStopsGoroutine(t *testing.T) {
	spy := &spyRefresher{}
	job := NewSessionRefreshJob(spy, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	callsAfterCancel := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterCancel, spy.calls.Load())

	assert.NotPanics(t, job.Stop)
}

func TestSessionRefreshJob_StopBeforeStart_NoPanic(t *testing.T) {
	job := NewSessionRefreshJob(&spyRefresher{}, time.Second, logger.Nop())

	assert.NotPanics(t, job.Stop)
}

func TestSessionRefreshJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSessionRefreshJob(&spyRefresher{}, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	job.Stop()

	assert.NotPanics(t, job.Stop)
}

func TestSessionRefreshJob_RestartReplacesLoop(t *testing.T) {
	spy := &spyRefresher{}
	job := NewSessionRefreshJob(spy, 10*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	job.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "the first loop must be gone as well")
}

func TestSessionRefreshJob_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		job := NewSessionRefreshJob(&spyRefresher{}, interval, logger.Nop())
		assert.Equal(t, defaultRefreshInterval, job.interval)
	}
}
