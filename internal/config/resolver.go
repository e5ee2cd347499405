package config

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// rawSettings is the merged, not yet validated record.
type rawSettings struct {
	ProjectRef     string `env:"SUPABASE_PROJECT_REF"`
	DBPassword     string `env:"SUPABASE_DB_PASSWORD"`
	Region         string `env:"SUPABASE_REGION"`
	AccessToken    string `env:"SUPABASE_ACCESS_TOKEN"`
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	APIURL         string `env:"SUPABASE_API_URL"`
	QueryAPIKey    string `env:"QUERY_API_KEY"`
	QueryAPIURL    string `env:"QUERY_API_URL"`
}

// envKeys are the keys the process environment may set. Like file keys they
// match case-insensitively.
var envKeys = []string{
	KeyProjectRef,
	KeyDBPassword,
	KeyRegion,
	KeyAccessToken,
	KeyServiceRoleKey,
	KeyQueryAPIKey,
	KeyQueryAPIURL,
}

// fileKeys are the keys honoured in the config file.
var fileKeys = append(append([]string(nil), envKeys...), KeyAPIURL)

// Resolve builds Settings from an environment snapshot and an optional config
// file, with precedence: Environment variables > Config file > Defaults.
// An empty configFile means no file. Validation failures are returned as
// *ValidationError, file read failures as *ConfigFileAccessError.
func Resolve(configFile string, environ map[string]string, logger *zap.Logger) (Settings, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	merged := defaultValues()

	if configFile != "" {
		fileValues, err := readConfigFile(configFile, logger)
		if err != nil {
			return Settings{}, err
		}
		for key, value := range fileValues {
			merged[key] = value
		}
	}

	for _, key := range envKeys {
		value, ok, err := lookupFold(environ, key)
		if err != nil {
			return Settings{}, err
		}
		if ok {
			merged[key] = value
		}
	}

	var raw rawSettings
	if err := env.ParseWithOptions(&raw, env.Options{Environment: merged}); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	settings, err := raw.validate(logger)
	if err != nil {
		return Settings{}, err
	}

	logSource(logger, configFile, environ)
	return settings, nil
}

func defaultValues() map[string]string {
	return map[string]string{
		KeyProjectRef:  DefaultProjectRef,
		KeyRegion:      DefaultRegion,
		KeyAPIURL:      DefaultAPIURL,
		KeyQueryAPIKey: DefaultQueryAPIKey,
		KeyQueryAPIURL: DefaultQueryAPIURL,
	}
}

// readConfigFile parses a dotenv file and returns the recognised keys,
// normalised to upper case.
func readConfigFile(path string, logger *zap.Logger) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigFileAccessError{Path: path, Err: err}
	}

	parsed, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	for key := range parsed {
		if !isFileKey(strings.ToUpper(key)) {
			logger.Debug("ignoring unknown config file key", zap.String("key", key), zap.String("path", path))
		}
	}

	values := make(map[string]string, len(fileKeys))
	for _, key := range fileKeys {
		value, ok, err := lookupFold(parsed, key)
		if err != nil {
			return nil, err
		}
		if ok {
			values[key] = value
		}
	}
	return values, nil
}

func isFileKey(key string) bool {
	return slices.Contains(fileKeys, key)
}

// lookupFold finds key in values ignoring case. The exact spelling wins over
// other case variants; differing variants without an exact match are an
// error, since neither source keeps line order.
func lookupFold(values map[string]string, key string) (string, bool, error) {
	if value, ok := values[key]; ok {
		return value, true, nil
	}

	var (
		found  bool
		result string
	)
	for k, v := range values {
		if !strings.EqualFold(k, key) {
			continue
		}
		if found && v != result {
			return "", false, &ValidationError{Field: key, Reason: "conflicting values in differently cased keys"}
		}
		found, result = true, v
	}
	return result, found, nil
}

// validate runs the field-level checks, then the cross-field checks.
func (r rawSettings) validate(logger *zap.Logger) (Settings, error) {
	if r.ProjectRef == "" {
		return Settings{}, &ValidationError{Field: KeyProjectRef, Reason: "cannot be empty"}
	}
	// Any region passes, including "local" for self-hosted targets.

	password := r.DBPassword
	if isLoopback(r.ProjectRef) {
		if password == "" {
			password = LocalDBPassword
		}
	} else if password == "" {
		logger.Error("SUPABASE_DB_PASSWORD is required when connecting to a remote instance",
			zap.String("project_ref", r.ProjectRef))
		return Settings{}, &ValidationError{Field: KeyDBPassword, Reason: "database password is required for remote targets"}
	}

	return Settings{
		projectRef:     r.ProjectRef,
		dbPassword:     password,
		region:         r.Region,
		accessToken:    r.AccessToken,
		serviceRoleKey: r.ServiceRoleKey,
		apiURL:         r.APIURL,
		queryAPIKey:    r.QueryAPIKey,
		queryAPIURL:    r.QueryAPIURL,
	}, nil
}

// logSource reports which source won. It has no effect on resolution.
func logSource(logger *zap.Logger, configFile string, environ map[string]string) {
	_, hasRef, _ := lookupFold(environ, KeyProjectRef)
	_, hasPassword, _ := lookupFold(environ, KeyDBPassword)
	envPresent := hasRef || hasPassword

	switch {
	case envPresent && configFile != "":
		logger.Info("using environment variables over config file", zap.String("config_file", configFile))
	case envPresent:
		logger.Info("using environment variables for configuration")
	case configFile != "":
		logger.Info("using settings from config file", zap.String("config_file", configFile))
	default:
		logger.Info("using default settings (local development)")
	}
}
