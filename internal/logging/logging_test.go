package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tidop/geomath/internal/logging"
)

func TestNewLoggerConfigLevel(t *testing.T) {
	assert.Equal(t, zap.InfoLevel, logging.NewLoggerConfig(false).Level.Level())
	assert.Equal(t, zap.DebugLevel, logging.NewLoggerConfig(true).Level.Level())
	assert.Equal(t, []string{"stderr"}, logging.NewLoggerConfig(false).OutputPaths)
}

func TestNewLogger(t *testing.T) {
	l, err := logging.NewLogger("tltransform", true)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestObservedLogger(t *testing.T) {
	l, logs := logging.NewObservedLogger(zapcore.InfoLevel)
	l.Debugw("hidden")
	l.Infow("fitted", "rmse", 0.5)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "fitted", entry.Message)
	assert.Equal(t, 0.5, entry.ContextMap()["rmse"])
}
