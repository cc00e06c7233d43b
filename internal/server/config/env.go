package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr       = "MESSENGER_GRPC_ADDR"
	EnvHTTPAddr       = "MESSENGER_HTTP_ADDR"
	EnvDatabaseDriver = "MESSENGER_DATABASE_DRIVER"
	EnvDatabaseDSN    = "MESSENGER_DATABASE_DSN"
	EnvSecretKey      = "MESSENGER_SECRET_KEY"
	EnvTokenValidity  = "MESSENGER_TOKEN_VALIDITY"
	EnvBcryptCost     = "MESSENGER_BCRYPT_COST"
	EnvQueryTimeout   = "MESSENGER_QUERY_TIMEOUT"
	EnvLogLevel       = "MESSENGER_LOG_LEVEL"
	EnvAllowedOrigins = "MESSENGER_ALLOWED_ORIGINS"
)

// dotEnvFile is loaded before the environment is read. Variables already
// set in the process win over the file.
var dotEnvFile = ".env"

func parseEnv(config *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: load %s: %v", common.ErrorConfiguration, dotEnvFile, err)
	}

	lookupString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	lookupString(&config.EndpointAddrHTTP, EnvHTTPAddr)
	lookupString(&config.DatabaseDriver, EnvDatabaseDriver)
	lookupString(&config.DatabaseDSN, EnvDatabaseDSN)
	lookupString(&config.SecretKey, EnvSecretKey)
	lookupString(&config.LogLevel, EnvLogLevel)

	if err := lookupDuration(&config.AccessTokenValidityDuration, EnvTokenValidity); err != nil {
		return err
	}
	if err := lookupDuration(&config.QueryTimeout, EnvQueryTimeout); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvBcryptCost); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrorConfiguration, EnvBcryptCost, err)
		}
		config.BcryptCost = cost
	}

	if v, ok := os.LookupEnv(EnvAllowedOrigins); ok {
		config.AllowedOrigins = splitList(v)
	}

	return nil
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrorConfiguration, key, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
