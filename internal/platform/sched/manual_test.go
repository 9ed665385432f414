package sched_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/sched"
)

func TestManualFiresInDueOrder(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m := sched.NewManual(start)

	var fired []string
	m.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	m.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	m.AfterFunc(time.Second, func() { fired = append(fired, "b") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, start.Add(2*time.Second), m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, m.Pending())
}

func TestManualRunsCallbacksArmedDuringAdvance(t *testing.T) {
	t.Parallel()
	m := sched.NewManual(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		m.AfterFunc(time.Second, tick)
	}
	m.AfterFunc(time.Second, tick)

	m.Advance(10 * time.Second)
	require.Equal(t, 10, ticks)
	require.Equal(t, 1, m.Pending())
}

func TestManualStopPreventsCallback(t *testing.T) {
	t.Parallel()
	m := sched.NewManual(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
	called := false
	h := m.AfterFunc(time.Second, func() { called = true })

	require.True(t, h.Stop())
	require.False(t, h.Stop())
	m.Advance(time.Minute)
	require.False(t, called)
}
