package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/itemservice/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, false, "")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.WithFields(logrus.Fields{"b": 2, "a": 1}).Info("Creating new item: Test Item")
	assert.Regexp(t, `^\[.+\]  INFO: Creating new item: Test Item \(a=1, b=2\)\n$`, buf.String())

	buf.Reset()
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, true, "")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	logger.Dump(log, "Created item", struct{ Name string }{Name: "Test Item"})
	assert.Contains(t, buf.String(), "DEBUG: Created item:")
	assert.Contains(t, buf.String(), `Name: "Test Item"`)
}

func TestNewWithFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "itemservice.log")

	var buf bytes.Buffer
	log := logger.New(&buf, false, filename)
	log.Warn("Item not found: 999")

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), " WARNING: Item not found: 999")
	assert.Contains(t, buf.String(), " WARNING: Item not found: 999")
}
