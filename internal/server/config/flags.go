package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/flagx"
)

var serverFlags = []string{"-a", "-l", "-b", "-d", "-s", "-t", "-w", "-q", "-v", "-o"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-l string   HTTP bind address (e.g., ":8080"; empty disables HTTP)
//	-b string   database driver: pgx, postgres or sqlite
//	-d string   database DSN
//	-s string   token signing secret
//	-t int      token validity, minutes (0 = non-expiring)
//	-w int      bcrypt work factor
//	-q int      query timeout, seconds
//	-v string   log level
//	-o string   comma-separated CORS origins
//
// Only the flags above are looked at (flagx.FilterArgs), so -c/-config and
// flags of other components pass through untouched.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt work factor")

	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "token validity (in minutes)")
	queryTimeout := fs.Int("q", int(config.QueryTimeout.Seconds()), "query timeout (in seconds)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorConfiguration, err)
	}

	// Unit-converted flags override earlier sources only when given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "q":
			config.QueryTimeout = time.Duration(*queryTimeout) * time.Second
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})
	return nil
}
