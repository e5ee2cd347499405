package config

import "fmt"

// ValidationError is returned when a setting is missing or malformed after
// all sources have been merged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigFileAccessError is returned when probing or reading a candidate
// config file fails for any reason other than the file not existing.
type ConfigFileAccessError struct {
	Path string
	Err  error
}

func (e *ConfigFileAccessError) Error() string {
	return fmt.Sprintf("access config file %s: %v", e.Path, e.Err)
}

func (e *ConfigFileAccessError) Unwrap() error {
	return e.Err
}
