package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelWarn, false)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("expected debug/info filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("expected warn/error lines, got %q", out)
	}
}

func TestStdoutMirrorSkipsDebug(t *testing.T) {
	var file, stdout bytes.Buffer
	l := NewWithWriter(&file, LevelDebug, true)
	l.stdout = &stdout

	l.Debug("quiet")
	l.Info("loud")

	if strings.Contains(stdout.String(), "quiet") {
		t.Fatalf("debug should not reach stdout: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "loud") {
		t.Fatalf("info should reach stdout: %q", stdout.String())
	}
	if !strings.Contains(file.String(), "quiet") {
		t.Fatalf("debug should reach the file: %q", file.String())
	}
}

func TestWriteTrimsAndLogsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelInfo, false)

	n, err := l.Write([]byte("GET /api/status/1 | 200\n"))
	if err != nil || n != len("GET /api/status/1 | 200\n") {
		t.Fatalf("unexpected write result n=%d err=%v", n, err)
	}
	if !strings.Contains(buf.String(), "[INFO] GET /api/status/1 | 200") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	_, _ = l.Write([]byte("   \n"))
	if buf.Len() != 0 {
		t.Fatalf("blank writes should be dropped, got %q", buf.String())
	}
}

func TestNewCreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ytweb.log")
	l, err := New(path, LevelInfo, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	l.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"WARN":  LevelWarn,
		"error": LevelError,
		"info":  LevelInfo,
		"bogus": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
