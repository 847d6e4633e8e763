package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"listing-portal/internal/core/port"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapterJSONCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"trace_id": "abc"}).Error("prediction failed", errors.New("boom"), port.Fields{"status_code": 500})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "prediction failed" || record["trace_id"] != "abc" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["status_code"] != float64(500) {
		t.Fatalf("status_code missing: %v", record)
	}
	if record["err"] != "boom" {
		t.Fatalf("error missing: %v", record)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden too", nil)
	logger.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

type recordingLogger struct {
	messages *[]string
}

func (r recordingLogger) Info(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "info:"+msg)
}
func (r recordingLogger) Warn(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "warn:"+msg)
}
func (r recordingLogger) Error(msg string, _ error, _ port.Fields) {
	*r.messages = append(*r.messages, "error:"+msg)
}
func (r recordingLogger) Debug(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "debug:"+msg)
}
func (r recordingLogger) WithFields(port.Fields) port.LoggerPort { return r }

func TestMultiLoggerFansOut(t *testing.T) {
	if _, err := NewMultiloggerAdapter(); err == nil {
		t.Fatal("expected error for empty logger list")
	}

	var a, b []string
	multi, err := NewMultiloggerAdapter(recordingLogger{&a}, recordingLogger{&b})
	if err != nil {
		t.Fatal(err)
	}
	multi.WithFields(port.Fields{"k": "v"}).Warn("careful", nil)

	if len(a) != 1 || len(b) != 1 || a[0] != "warn:careful" || b[0] != "warn:careful" {
		t.Fatalf("fan-out failed: %v %v", a, b)
	}
}
