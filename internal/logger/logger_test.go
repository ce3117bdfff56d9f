package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/emoquiz-bot/internal/config"
)

func TestNewByEnv(t *testing.T) {
	tests := []struct {
		env       string
		debugLogs bool
	}{
		{env: "production", debugLogs: false},
		{env: "local", debugLogs: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			lg, err := New(&config.Config{Env: tt.env})
			require.NoError(t, err)
			assert.Equal(t, tt.debugLogs, lg.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
