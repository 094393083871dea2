package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("resolved") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("found dependency file") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("found dependency file") }, true},
		{"warn at info level", LogInfo, func(l *log.Logger) { l.Warn("invalid dependency file") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestGitLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogDebug)

	gitLogger(logger).Debug("run", "args", "pull")

	out := buf.String()
	if !strings.Contains(out, "git") || !strings.Contains(out, "args=pull") {
		t.Errorf("output = %q, want git prefix and args", out)
	}
	if logger.GetPrefix() != "" {
		t.Errorf("parent prefix = %q, want empty", logger.GetPrefix())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))

	prog.done("resolved dependencies", "libraries", 3, "files", 2)

	out := buf.String()
	for _, want := range []string{"resolved dependencies", "elapsed=", "libraries=3", "files=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, missing %q", out, want)
		}
	}
}

func TestProgressDoneFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.WarnLevel)

	newProgress(logger).done("resolved dependencies")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing below warn", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}
