package application

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/supabase-mcp/internal/config"
)

// App carries the resolved settings for the lifetime of the process. It is
// read-only after New and safe for concurrent use.
type App struct {
	settings config.Settings
	logger   *zap.Logger
}

// New wraps the resolved settings and logger.
func New(settings config.Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		settings: settings,
		logger:   logger,
	}
}

// Settings returns the resolved settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// WriteSettings writes the settings as YAML with secrets redacted.
func (a *App) WriteSettings(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a.settings); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush settings: %w", err)
	}
	return nil
}

// LogSummary emits the non-secret part of the settings at info level.
func (a *App) LogSummary() {
	_, hasToken := a.settings.AccessToken()
	_, hasServiceKey := a.settings.ServiceRoleKey()
	a.logger.Info("configuration resolved",
		zap.String("project_ref", a.settings.ProjectRef()),
		zap.String("region", a.settings.Region()),
		zap.Bool("local", a.settings.IsLocal()),
		zap.String("api_url", a.settings.APIURL()),
		zap.String("query_api_url", a.settings.QueryAPIURL()),
		zap.Bool("access_token", hasToken),
		zap.Bool("service_role_key", hasServiceKey),
	)
}
