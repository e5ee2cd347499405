// Command supabase-mcp resolves the runtime configuration of the Supabase MCP
// client and reports it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/supabase-mcp/internal/application"
	"github.com/eugenenazirov/supabase-mcp/internal/config"
	"github.com/eugenenazirov/supabase-mcp/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "supabase-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("supabase-mcp", "Supabase MCP client - resolves settings from environment, .env file and defaults")
	envFile := kingpinApp.Flag("env-file", "Name of the dotenv file looked up in the working directory").
		Default(config.DefaultEnvFile).Envar("SUPABASE_MCP_ENV_FILE").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").String()
	printSettings := kingpinApp.Flag("print-settings", "Print the resolved settings as YAML with secrets redacted").Bool()

	if _, err := kingpinApp.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	settings, err := config.Load(&config.LoadOptions{
		EnvFile: *envFile,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app := application.New(settings, logger)
	app.LogSummary()

	if *printSettings {
		if err := app.WriteSettings(stdout); err != nil {
			return err
		}
	}
	return nil
}
