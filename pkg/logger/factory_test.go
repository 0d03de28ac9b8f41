package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to json at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithOutput(&buf))

		log.Debug("hidden")
		log.Info("visible", slog.String("key", "value"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "visible", record["msg"])
		assert.Equal(t, "value", record["key"])
	})

	t.Run("development preset logs text at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithDevelopment("tourkit"), WithOutput(&buf))

		log.Debug("dev detail")

		out := buf.String()
		assert.Contains(t, out, "dev detail")
		assert.Contains(t, out, "service=tourkit")
		assert.False(t, strings.HasPrefix(out, "{"))
	})

	t.Run("environment option picks preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithEnvironment("production", "tourkit"), WithOutput(&buf))

		log.Debug("hidden in production")
		log.Info("kept")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "kept", record["msg"])
		assert.Equal(t, "production", record["env"])
	})

	t.Run("static attrs appear on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithOutput(&buf), WithAttr(slog.String("version", "1.2.3")))

		log.Info("first")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "1.2.3", record["version"])
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			New(WithFormat("yaml"))
		})
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(WithOutput(&buf))

	log.Info("failed",
		Error(assert.AnError),
		UserID("user-1"),
		Component("auth"),
		Event("login"),
	)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Contains(t, record, "error")
	assert.Equal(t, "user-1", record["user_id"])
	assert.Equal(t, "auth", record["component"])
	assert.Equal(t, "login", record["event"])
}
