package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSbpHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "info message",
			level:   slog.LevelInfo,
			message: "archive published",
			want:    "2024-03-15T09:30:45Z\tINFO\top-1\tarchive published\n",
		},
		{
			name:    "debug level",
			level:   slog.LevelDebug,
			message: "structure generated",
			want:    "2024-03-15T09:30:45Z\tDEBUG\top-1\tstructure generated\n",
		},
		{
			name:    "with record attrs",
			level:   slog.LevelWarn,
			message: "slow destination",
			attrs:   []slog.Attr{slog.String("destination", "nas"), slog.Int("size", 512)},
			want:    "2024-03-15T09:30:45Z\tWARN\top-1\tslow destination\tdestination=nas\tsize=512\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &sbpHandler{w: &buf, opID: "op-1"}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			r.AddAttrs(tt.attrs...)

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestSbpHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &sbpHandler{w: &buf, opID: "op-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "destination")}).(*sbpHandler)
	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}

	r := slog.NewRecord(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), slog.LevelInfo, "upload", 0)
	r.AddAttrs(slog.String("key", "abc"))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"a=1", "component=destination", "key=abc"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestSbpHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Leveler
		check slog.Level
		want  bool
	}{
		{name: "nil level accepts debug", level: nil, check: slog.LevelDebug, want: true},
		{name: "warn rejects info", level: slog.LevelWarn, check: slog.LevelInfo, want: false},
		{name: "warn accepts error", level: slog.LevelWarn, check: slog.LevelError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &sbpHandler{level: tt.level}
			if got := h.Enabled(context.Background(), tt.check); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantConsole []string
		skipConsole []string
	}{
		{name: "quiet", verbose: false, wantConsole: []string{"careful"}, skipConsole: []string{"hello"}},
		{name: "verbose", verbose: true, wantConsole: []string{"careful", "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "log")
			var console bytes.Buffer

			logger, f, err := newLogger(dir, "op-7", &console, tt.verbose)
			if err != nil {
				t.Fatalf("newLogger() error = %v", err)
			}
			logger.Info("hello")
			logger.Warn("careful")
			f.Close()

			data, err := os.ReadFile(filepath.Join(dir, logFileName))
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			for _, want := range []string{"hello", "careful", "op-7"} {
				if !strings.Contains(string(data), want) {
					t.Errorf("log file missing %q: %q", want, data)
				}
			}
			for _, want := range tt.wantConsole {
				if !strings.Contains(console.String(), want) {
					t.Errorf("console missing %q: %q", want, console.String())
				}
			}
			for _, skip := range tt.skipConsole {
				if strings.Contains(console.String(), skip) {
					t.Errorf("console unexpectedly contains %q", skip)
				}
			}
		})
	}
}
