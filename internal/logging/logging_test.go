// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		level   string
		enabled zapcore.Level
		quiet   zapcore.Level
	}{
		{"development default", "", "", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"production default", "production", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"prod alias with level", "PROD", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"development with level", "development", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.mode, tt.level)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.quiet))
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
