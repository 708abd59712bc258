package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput("debug", "json", &buf)
	require.NoError(t, err)

	l.Info("dependency added", zap.String("dependency_id", "dep_1"))
	Sync(l)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "dependency added", line["message"])
	assert.Equal(t, "dep_1", line["dependency_id"])
	assert.Contains(t, line, "time")
}

func TestNewWithOutput_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput("warn", "console", &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithOutput_Invalid(t *testing.T) {
	_, err := NewWithOutput("loud", "json", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewWithOutput("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
