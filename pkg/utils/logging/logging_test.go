package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

func TestFromAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("hello", "key", "value")

	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("context logger not used: %s", buf.String())
	}

	if logging.From(context.Background()) != logging.Default() {
		t.Error("From() without a context logger should return the default")
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatJSON)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info log not filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn log missing: %s", out)
	}
}

func TestSecretRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	type creds struct {
		APIKey string `masq:"secret"`
		Name   string
	}
	logger.Info("configured", "upstream", creds{APIKey: "super-secret-token", Name: "directory"})

	out := buf.String()
	if strings.Contains(out, "super-secret-token") {
		t.Errorf("secret leaked to log output: %s", out)
	}
	if !strings.Contains(out, "directory") {
		t.Errorf("non-secret field missing: %s", out)
	}
}
