package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	TODO_ADDRESS        HTTP bind address (e.g., ":3006")
//	TODO_USER           login username
//	TODO_PASSWORD       login password
//	TODO_SECRET_KEY     JWT HMAC secret
//	TODO_QUERY_TIMEOUT  store round-trip bound, Go duration (e.g., "5s")
//	DB_HOST             PostgreSQL host[:port]
//	DB_USER             PostgreSQL user
//	DB_PASS             PostgreSQL password
//	DB_NAME             PostgreSQL database name
//
// Unset variables leave the current (default) value in place. An
// unparsable TODO_QUERY_TIMEOUT panics: a misconfigured timeout should
// stop the process before it starts serving.
func parseEnv(config *Config) {
	setFromEnv(&config.EndpointAddr, "TODO_ADDRESS")
	setFromEnv(&config.AuthUsername, "TODO_USER")
	setFromEnv(&config.AuthPassword, "TODO_PASSWORD")
	setFromEnv(&config.SecretKey, "TODO_SECRET_KEY")
	setFromEnv(&config.DBHost, "DB_HOST")
	setFromEnv(&config.DBUser, "DB_USER")
	setFromEnv(&config.DBPassword, "DB_PASS")
	setFromEnv(&config.DBName, "DB_NAME")

	if v, ok := os.LookupEnv("TODO_QUERY_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.QueryTimeout = d
	}
}

func setFromEnv(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = v
	}
}
