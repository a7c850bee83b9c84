package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	content := buf.String()
	assert.NotContains(t, content, "debug message")
	assert.NotContains(t, content, "info message")
	assert.Contains(t, content, "warn message")
	assert.Contains(t, content, "error message")
}

func TestLogWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "info"}, &buf).With("component", "api")

	log.Info("request sent", "path", "/books")

	content := buf.String()
	assert.Contains(t, content, "component=api")
	assert.Contains(t, content, "path=/books")
}

func TestJSONOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "client.json")

	log := New(Config{
		Level:  "info",
		Output: logFile,
		Format: "json",
	})
	log.Info("book created", "id", "42", "tags", 2)

	data, err := os.ReadFile(logFile) // nolint:gosec
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))

	assert.Equal(t, "book created", entry["msg"])
	assert.Equal(t, "42", entry["id"])
	assert.Equal(t, float64(2), entry["tags"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
		{"DEBUG", "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLevel(tt.level).String(); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestGetWriter(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "", "STDOUT"} {
		w, err := getWriter(output)
		if err != nil {
			t.Errorf("getWriter(%q) error = %v", output, err)
		}
		if w == nil {
			t.Errorf("getWriter(%q) returned nil writer", output)
		}
	}

	_, err := getWriter(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"))
	if err == nil {
		t.Error("getWriter() into a missing directory should fail")
	}
}

func TestNewFallsBackToStderr(t *testing.T) {
	log := New(Config{Output: filepath.Join(t.TempDir(), "no", "such", "file.log")})
	require.NotNil(t, log)
	log.Debug("not written anywhere visible")
}

func TestNoop(t *testing.T) {
	log := Noop()
	require.NotNil(t, log)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
}

func BenchmarkLogWithFields(b *testing.B) {
	log := Noop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message", "method", "GET", "status", 200, "ok", true)
	}
}
