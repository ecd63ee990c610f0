package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level, format string
		debug, info   bool
	}{
		{"debug", "console", true, true},
		{"info", "json", false, true},
		{"WARN", "", false, false},
		{"bogus", "json", false, true},
		{"", "console", false, true},
	}
	for _, tt := range tests {
		l, err := New(tt.level, tt.format)
		require.NoError(t, err)
		require.Equal(t, tt.debug, l.Desugar().Core().Enabled(zap.DebugLevel), "level %q", tt.level)
		require.Equal(t, tt.info, l.Desugar().Core().Enabled(zap.InfoLevel), "level %q", tt.level)
	}
}

func TestPrintf_WritesInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logf := Printf(zap.New(core).Sugar())

	logf("[KAFKA] drained %d orders", 3)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "[KAFKA] drained 3 orders", logs.All()[0].Message)
}
