// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the origin of the academic records API, including the
	// /api prefix.
	APIBaseURL string `koanf:"api_base_url"`

	// APITimeoutMS bounds each upstream request.
	APITimeoutMS int `koanf:"api_timeout_ms"`

	// TokenPath locates the persisted bearer token on disk.
	TokenPath string `koanf:"token_path"`

	// CookieName is the fixed key under which the token is mirrored to the
	// browser for the route guard.
	CookieName string `koanf:"cookie_name"`

	// CookieSecure marks the token cookie Secure; disable for local runs.
	CookieSecure bool `koanf:"cookie_secure"`

	// TopElements caps the ranked element-composition chart series.
	TopElements int `koanf:"top_elements"`

	// LabelWidth truncates chart labels to this many characters.
	LabelWidth int `koanf:"label_width"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		APIBaseURL:   "https://etudiant-pgi.esp.sn:8080/api",
		APITimeoutMS: 30_000,
		TokenPath:    "releves.token",
		CookieName:   "authToken",
		CookieSecure: false,
		TopElements:  5,
		LabelWidth:   15,
	}
}
