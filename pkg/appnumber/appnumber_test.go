package appnumber

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reNumber = regexp.MustCompile(`^LAMF\d{12}$`)

func TestNext_Format(t *testing.T) {
	g := New("").WithClock(func() time.Time {
		return time.Date(2025, 10, 19, 23, 0, 0, 0, time.UTC)
	})

	got, err := g.Next()
	require.NoError(t, err)
	assert.Regexp(t, reNumber, got)
	assert.Equal(t, "LAMF251019", got[:10])
}

func TestNext_CustomPrefix(t *testing.T) {
	got, err := New("LN").Next()
	require.NoError(t, err)
	assert.Regexp(t, `^LN\d{12}$`, got)
}

func TestNext_MostlyUnique(t *testing.T) {
	g := New(DefaultPrefix)
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		got, err := g.Next()
		require.NoError(t, err)
		seen[got] = struct{}{}
	}
	// a million suffixes per day; a handful of collisions would still be tolerated by the caller
	assert.GreaterOrEqual(t, len(seen), n-2)
}
