// Package config resolves the runtime settings of the Supabase MCP client
// from the process environment, an optional dotenv file and built-in
// defaults, with precedence: Environment variables > Config file > Defaults.
//
// The config file is located by [Locator] (working directory first, then the
// deprecated per-user global path) and the values are merged and validated
// by [Resolve]. [Load] composes both for the process entry point.
package config
