package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelAndRun(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "run-1")

	log.Info("hidden %d", 1)
	log.Warn("kept %d of %d", 2, 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="kept 2 of 3"`)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "run=run-1")
}

func TestNew_PercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "").Debug("discount 10%")

	assert.Contains(t, buf.String(), "discount 10%")
	assert.NotContains(t, buf.String(), "run=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("nothing %s", "here")
	})
}
