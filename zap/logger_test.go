package zap_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fwojciec/netkit"
	netkitzap "github.com/fwojciec/netkit/zap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON entries in production mode", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := netkitzap.NewLogger(&buf, "info", false)
		require.NoError(t, err)

		logger.Info("client connected", "conn_id", "abc", "port", 8080)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "client connected", entry["msg"])
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "abc", entry["conn_id"])
		assert.InDelta(t, 8080, entry["port"], 0)
		assert.Contains(t, entry, "ts")
	})

	t.Run("writes console entries in development mode", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := netkitzap.NewLogger(&buf, "debug", true)
		require.NoError(t, err)

		logger.Debug("crawling", "url", "http://example.test/")

		output := buf.String()
		assert.Contains(t, output, "DEBUG")
		assert.Contains(t, output, "crawling")
		assert.Contains(t, output, "http://example.test/")
	})

	t.Run("drops entries below the configured level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := netkitzap.NewLogger(&buf, "warn", false)
		require.NoError(t, err)

		logger.Info("ignored")
		logger.Warn("kept")

		assert.NotContains(t, buf.String(), "ignored")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("returns EINVALID for unknown level", func(t *testing.T) {
		t.Parallel()

		_, err := netkitzap.NewLogger(&bytes.Buffer{}, "loud", false)

		assert.Equal(t, netkit.EINVALID, netkit.ErrorCode(err))
	})
}
