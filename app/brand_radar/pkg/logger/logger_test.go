package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2025, 2, 21, 9, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "retrying fetch",
		Data:    logrus.Fields{"stage": "primary", "attempt": 2},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2025-02-21 09:30:00] [WARN] [] retrying fetch attempt=2 stage=primary\n", string(out))
}

func TestInitLogger_WritesFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "logs", "brand_radar.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	var buf bytes.Buffer
	Log.Debug("hello")
	SetOutput(&buf)
	Log.Info("captured")
	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "logger_test.go:")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
