package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNewJSON_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)

	log.Info(context.Background(), "server started", "addr", ":3006")

	record := logLine(t, &buf)
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "server started", record["msg"])
	assert.Equal(t, ":3006", record["addr"])
}

func TestWith_ChildIncludesBoundPairs(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf).With("module", "db_provider")

	log.Error(context.Background(), "release failed", "error", "closed")

	record := logLine(t, &buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "db_provider", record["module"])
	assert.Equal(t, "closed", record["error"])
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)

	log.Warn(context.Background(), "slow query")

	record := logLine(t, &buf)
	assert.Equal(t, "WARN", record["level"])
}
