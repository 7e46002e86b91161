package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags overlays selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3006")
//	-u string   login username
//	-p string   login password
//	-s string   JWT HMAC secret key
//	-t int      access token validity, hours
//	-dh string  database host[:port]
//	-du string  database user
//	-dp string  database password
//	-dn string  database name
//
// The flag set owns the whole command line of the server binary, so no
// argument filtering is needed.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.AuthUsername, "u", config.AuthUsername, "login username")
	fs.StringVar(&config.AuthPassword, "p", config.AuthPassword, "login password")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.DBHost, "dh", config.DBHost, "database host")
	fs.StringVar(&config.DBUser, "du", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "dp", config.DBPassword, "database password")
	fs.StringVar(&config.DBName, "dn", config.DBName, "database name")

	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
