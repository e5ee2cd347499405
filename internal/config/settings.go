package config

import (
	"slices"
	"strings"
)

// Recognised keys. All but KeyAPIURL are read from the environment; the API
// URL can only be set in the config file.
const (
	KeyProjectRef     = "SUPABASE_PROJECT_REF"
	KeyDBPassword     = "SUPABASE_DB_PASSWORD"
	KeyRegion         = "SUPABASE_REGION"
	KeyAccessToken    = "SUPABASE_ACCESS_TOKEN"
	KeyServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"
	KeyAPIURL         = "SUPABASE_API_URL"
	KeyQueryAPIKey    = "QUERY_API_KEY"
	KeyQueryAPIURL    = "QUERY_API_URL"
)

// Defaults applied when neither the environment nor the config file sets a key.
const (
	DefaultProjectRef  = "127.0.0.1:54322"
	DefaultRegion      = "us-east-1"
	DefaultAPIURL      = "https://api.supabase.com"
	DefaultQueryAPIKey = "test-key"
	DefaultQueryAPIURL = "https://api.thequery.dev/v1"

	// LocalDBPassword is used for loopback targets when no password is set.
	LocalDBPassword = "postgres"

	loopbackPrefix = "127.0.0.1"
	redacted       = "********"
)

// SupportedRegions lists the Supabase cloud regions. It documents valid
// values only; the resolver accepts any region, including "local".
var SupportedRegions = []string{
	"us-west-1", "us-east-1", "us-east-2", "ca-central-1",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
	"eu-central-2", "eu-north-1", "ap-south-1", "ap-southeast-1",
	"ap-northeast-1", "ap-northeast-2", "ap-southeast-2", "sa-east-1",
}

// IsSupportedRegion reports whether region is a known Supabase cloud region.
func IsSupportedRegion(region string) bool {
	return slices.Contains(SupportedRegions, region)
}

// Settings is the resolved configuration. It is a read-only value and is
// safe to share between goroutines.
type Settings struct {
	projectRef     string
	dbPassword     string
	region         string
	accessToken    string
	serviceRoleKey string
	apiURL         string
	queryAPIKey    string
	queryAPIURL    string
}

// ProjectRef returns the project reference: a hostname, IP or project ID.
func (s Settings) ProjectRef() string { return s.projectRef }

// DBPassword returns the database password. Always set on a resolved value.
func (s Settings) DBPassword() string { return s.dbPassword }

func (s Settings) Region() string { return s.region }

// AccessToken returns the personal access token, if one was configured.
func (s Settings) AccessToken() (string, bool) { return s.accessToken, s.accessToken != "" }

// ServiceRoleKey returns the service role key, if one was configured.
func (s Settings) ServiceRoleKey() (string, bool) { return s.serviceRoleKey, s.serviceRoleKey != "" }

// APIURL returns the Supabase management API base URL.
func (s Settings) APIURL() string { return s.apiURL }

func (s Settings) QueryAPIKey() string { return s.queryAPIKey }

func (s Settings) QueryAPIURL() string { return s.queryAPIURL }

// IsLocal reports whether the project reference points at a loopback target.
func (s Settings) IsLocal() bool {
	return isLoopback(s.projectRef)
}

// settingsView is the YAML shape of Settings with secrets masked.
type settingsView struct {
	ProjectRef     string `yaml:"project_ref"`
	DBPassword     string `yaml:"db_password"`
	Region         string `yaml:"region"`
	AccessToken    string `yaml:"access_token,omitempty"`
	ServiceRoleKey string `yaml:"service_role_key,omitempty"`
	APIURL         string `yaml:"api_url"`
	QueryAPIKey    string `yaml:"query_api_key"`
	QueryAPIURL    string `yaml:"query_api_url"`
}

// MarshalYAML renders the settings with every secret redacted.
func (s Settings) MarshalYAML() (any, error) {
	return settingsView{
		ProjectRef:     s.projectRef,
		DBPassword:     redact(s.dbPassword),
		Region:         s.region,
		AccessToken:    redact(s.accessToken),
		ServiceRoleKey: redact(s.serviceRoleKey),
		APIURL:         s.apiURL,
		QueryAPIKey:    redact(s.queryAPIKey),
		QueryAPIURL:    s.queryAPIURL,
	}, nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

func isLoopback(projectRef string) bool {
	return strings.HasPrefix(projectRef, loopbackPrefix)
}
