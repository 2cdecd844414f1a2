package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	assert.Equal(t, zap.DebugLevel, level.Level())

	SetLevel("release")
	assert.Equal(t, zap.InfoLevel, level.Level())
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	assert.NotNil(t, Log)
	Log.Info("noop logger accepts writes")
}
