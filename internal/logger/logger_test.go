package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logger.LogLevel
		valid bool
	}{
		{"debug", logger.DebugLevel, true},
		{"INFO", logger.InfoLevel, true},
		{"warning", logger.WarnLevel, true},
		{"warn", logger.WarnLevel, true},
		{"error", logger.ErrorLevel, true},
		{"loud", logger.WarnLevel, false},
	}

	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.valid, ok, tt.in)
	}
}

func TestErrorWithContext(t *testing.T) {
	logger.SetLogLevel(logger.DebugLevel)

	var buf bytes.Buffer
	log := logger.New(&buf)

	err := errors.New().WithData(errors.ErrSourceUnavailable, "/proc/meminfo")
	log.ErrorWithContext(err, "hardware", "memory").Msg("read failed")

	out := buf.String()
	assert.Contains(t, out, `"error_code":"source_unavailable"`)
	assert.Contains(t, out, `"component":"hardware"`)
	assert.Contains(t, out, `"operation":"memory"`)
	assert.Contains(t, out, `"message":"read failed"`)
}

func TestNopDiscards(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() {
		log.Debug().Str("k", "v").Msg("ignored")
		log.ErrorWithCode(errors.New().New(errors.ErrInternal)).Send()
	})
}
