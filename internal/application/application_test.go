package application

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/supabase-mcp/internal/config"
)

func resolveSettings(t *testing.T, environ map[string]string) config.Settings {
	t.Helper()
	settings, err := config.Resolve("", environ, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return settings
}

func TestNewKeepsSettings(t *testing.T) {
	settings := resolveSettings(t, map[string]string{config.KeyRegion: "eu-west-1"})
	logger := zaptest.NewLogger(t)

	app := New(settings, logger)
	if app.Settings() != settings {
		t.Fatalf("Settings accessor did not return the resolved value")
	}
	if app.Logger() != logger {
		t.Fatalf("Logger accessor did not return the provided logger")
	}
}

func TestNewWithoutLogger(t *testing.T) {
	app := New(resolveSettings(t, nil), nil)
	if app.Logger() == nil {
		t.Fatalf("expected no-op logger")
	}
	app.LogSummary()
}

func TestWriteSettingsRedactsSecrets(t *testing.T) {
	settings := resolveSettings(t, map[string]string{
		config.KeyProjectRef:  "myproject",
		config.KeyDBPassword:  "s3cr3t",
		config.KeyAccessToken: "sbp_token",
	})

	var buf bytes.Buffer
	if err := New(settings, nil).WriteSettings(&buf); err != nil {
		t.Fatalf("WriteSettings returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "project_ref: myproject") {
		t.Fatalf("expected project ref in output:\n%s", out)
	}
	for _, secret := range []string{"s3cr3t", "sbp_token", config.DefaultQueryAPIKey} {
		if strings.Contains(out, secret) {
			t.Fatalf("secret %q leaked into output:\n%s", secret, out)
		}
	}
}

func TestLogSummaryOmitsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	settings := resolveSettings(t, map[string]string{
		config.KeyProjectRef: "myproject",
		config.KeyDBPassword: "s3cr3t",
	})

	New(settings, zap.New(core)).LogSummary()

	entries := logs.FilterMessage("configuration resolved").All()
	if len(entries) != 1 {
		t.Fatalf("expected one summary entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["project_ref"] != "myproject" || fields["local"] != false {
		t.Fatalf("unexpected summary fields: %v", fields)
	}
	for key, value := range fields {
		if value == "s3cr3t" {
			t.Fatalf("password leaked in field %s", key)
		}
	}
}
