package applog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyWriterRotatesByDate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := NewDailyWriter(dir)
	require.NoError(t, err)

	day := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return day }
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	day = day.Add(2 * time.Minute)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	n, err := w.Write(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	first, err := os.ReadFile(filepath.Join(dir, "cryptohunter_2026-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "cryptohunter_2026-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(second))
}

func TestNewZapLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewZapLogger(dir, true)
	require.NoError(t, err)

	logger.Debug("debug line")
	logger.Info("treasure map ready")
	_ = logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, DailyFilename(time.Now())))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "treasure map ready"))
	assert.True(t, strings.Contains(string(content), "debug line"))
}
