package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheTTLSeconds is how long a built graph is served before the next
	// request rebuilds it.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// DefaultCacheTTL applies when CacheTTLSeconds is not positive.
const DefaultCacheTTL = 5 * time.Minute

// CacheTTL returns the graph cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Address returns the listen address for fiber.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
