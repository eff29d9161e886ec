package config

import "time"

// Config holds runtime settings for the portal client.
//
// Fields:
//   - APIBaseURL: scheme://host of the backend REST API.
//   - DatabaseDSN: path of the local SQLite database holding the session.
//   - RequestTimeout: per-request HTTP timeout; 0 means no timeout, matching
//     the web portal (a slow backend leaves the submit pending indefinitely).
//   - ResendCooldown: how long the resend-OTP action stays disabled after a
//     send.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	APIBaseURL          string
	DatabaseDSN         string
	RequestTimeout      time.Duration
	ResendCooldown      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://admin.medicalexpertise.net"
	c.DatabaseDSN = "portal.db"
	c.RequestTimeout = 0
	c.ResendCooldown = 60 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
