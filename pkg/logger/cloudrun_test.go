package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	return event
}

func TestCloudRunHandler_SeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(&buf, slog.LevelDebug))

	log.Warn("query failed", "service", "query", "error", errors.New("timeout"))

	event := decodeLine(t, &buf)
	if event["severity"] != "WARNING" || event["message"] != "query failed" {
		t.Errorf("unexpected event %v", event)
	}
	data, _ := event["data"].(map[string]any)
	if data["service"] != "query" || data["error"] != "timeout" {
		t.Errorf("unexpected data %v", data)
	}
}

func TestCloudRunHandler_GroupsFlattened(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(&buf, slog.LevelInfo)).
		With("request_id", "r1").
		WithGroup("widget").
		With("id", "w1")

	log.Info("saved", slog.Group("config", "type", "bar"))

	data, _ := decodeLine(t, &buf)["data"].(map[string]any)
	want := map[string]any{"request_id": "r1", "widget.id": "w1", "widget.config.type": "bar"}
	for k, v := range want {
		if data[k] != v {
			t.Errorf("expected %s=%v, got %v (data %v)", k, v, data[k], data)
		}
	}
}

func TestCloudRunHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(&buf, slog.LevelWarn))
	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
}

func TestGetSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{"DEBUG": slog.LevelDebug, "warn": slog.LevelWarn, "": slog.LevelInfo, "error": slog.LevelError}
	for in, want := range cases {
		if got := getSlogLevel(in); got != want {
			t.Errorf("getSlogLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}
