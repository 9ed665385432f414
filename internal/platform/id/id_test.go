package id_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/id"
)

type frozenClock struct{ at time.Time }

func (f frozenClock) Now() time.Time { return f.at }

func TestTimeSequenceIsStrictlyIncreasingOnFrozenClock(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gen := id.NewTimeSequence(frozenClock{at: at})

	first := gen.New()
	require.Equal(t, at.UnixMilli(), first)
	prev := first
	for i := 0; i < 50; i++ {
		next := gen.New()
		require.Greater(t, next, prev)
		prev = next
	}
}
