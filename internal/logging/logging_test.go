package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2024, 5, 1, 10, 0, 0, 123_000_000, time.UTC)

func fixedNow() time.Time { return fixed }

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Now: fixedNow})

	log.Info("10.0.0.5 - uptime - (true, \"up\")")
	log.Error(errors.New("boom"), "command failed", "host", "node-a")

	want := "2024-05-01 10:00:00,123 - INFO - 10.0.0.5 - uptime - (true, \"up\")\n" +
		"2024-05-01 10:00:00,123 - ERROR - command failed - {\"host\": \"node-a\", \"error\": \"boom\"}\n"
	assert.Equal(t, want, buf.String())
}

func TestNew_Verbosity(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Now: fixedNow})
	log.V(1).Info("hidden")
	assert.Empty(t, buf.String())

	log = New(&buf, Options{Now: fixedNow, Verbosity: 2})
	log.V(1).Info("shown")
	log.V(2).Info("deeper")
	log.V(3).Info("hidden")
	assert.Equal(t, "2024-05-01 10:00:00,123 - DEBUG - shown\n2024-05-01 10:00:00,123 - DEBUG - deeper\n", buf.String())
}

func TestNew_WithNameAndValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Now: fixedNow}).WithName("runner").WithName("ssh").WithValues("node", "a")
	log.Info("connected", "port", 22)
	assert.Equal(t, "2024-05-01 10:00:00,123 - INFO - runner.ssh - connected - {\"node\": \"a\", \"port\": 22}\n", buf.String())
}

func TestInit_CreatesFileInAppendMode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := Init(dir, fixed, Options{Now: fixedNow})
	require.NoError(t, err)
	log.Info("first")
	require.NoError(t, closer.Close())

	log, closer, err = Init(dir, fixed, Options{Now: fixedNow})
	require.NoError(t, err)
	log.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "2024-05-01-10-00-00.log"))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 10:00:00,123 - INFO - first\n2024-05-01 10:00:00,123 - INFO - second\n", string(data))
}

func TestInit_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, _, err := Init(filepath.Join(file, "sub"), fixed, Options{})
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "2024-05-01-10-00-00.log", FileName(fixed))
}
