package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zap.AtomicLevel{
		"debug":   zap.NewAtomicLevelAt(zap.DebugLevel),
		"INFO":    zap.NewAtomicLevelAt(zap.InfoLevel),
		" warn ":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"warning": zap.NewAtomicLevelAt(zap.WarnLevel),
		"error":   zap.NewAtomicLevelAt(zap.ErrorLevel),
		"bogus":   zap.NewAtomicLevelAt(zap.InfoLevel),
		"":        zap.NewAtomicLevelAt(zap.InfoLevel),
	}
	for in, want := range cases {
		assert.Equal(t, want.Level(), ParseLevel(in), "level %q", in)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	log, err := New("error", "json", "lamf-engine")
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()

	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.ErrorLevel))
}

func TestNew_ConsoleEncoding(t *testing.T) {
	log, err := New("debug", "console", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}
