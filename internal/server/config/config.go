// Package config handles configuration for the server component,
// including defaults, environment variables, and command-line flags.
package config

import (
	"net/url"
	"time"
)

// Config holds runtime settings for the todo server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - AuthUsername / AuthPassword: the single configured identity accepted
//     by the login endpoint. There is no per-user store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: access token lifetime.
//   - DBHost / DBUser / DBPassword / DBName: PostgreSQL connection parts.
//   - QueryTimeout: upper bound on a single store round-trip.
type Config struct {
	EndpointAddr          string
	AuthUsername          string
	AuthPassword          string
	SecretKey             string
	DBHost                string
	DBUser                string
	DBPassword            string
	DBName                string
	TokenValidityDuration time.Duration
	QueryTimeout          time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3006"
	c.AuthUsername = "Guest"
	c.AuthPassword = "NoPass"
	c.SecretKey = "NoKey"
	c.DBHost = "localhost:5432"
	c.DBUser = "todo"
	c.DBPassword = "todo"
	c.DBName = "todo"
	c.TokenValidityDuration = 48 * time.Hour
	c.QueryTimeout = 5 * time.Second
}

// DatabaseDSN assembles a pgx connection URL from the DB_* parts.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost,
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
