package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "info", "text")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("planned jobs", "jobs", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"planned jobs\"")
	assert.Contains(t, out, "jobs=3")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "DEBUG", "json")
	require.NoError(t, err)

	logger.Debug("matched", "confidence", "exact")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "matched", entry["msg"])
	assert.Equal(t, "exact", entry["confidence"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	require.Error(t, err)

	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, ErrUnknownLogFormat)
}
