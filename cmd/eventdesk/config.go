package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/eventdesk/internal/logger"
)

const (
	defaultAPIURL       = "http://localhost:5000/api"
	defaultLoggingLevel = logger.LevelWarn
	defaultEnvironment  = logger.EnvDevelopment
	defaultStateDir     = ".eventdesk"
	envPrefix           = "EVENTDESK_"
)

type Config struct {
	// Admin API base URL, e.g. https://example.com/api
	APIURL string

	// Default logging level
	LogLevel string

	// Environment (dev, prod)
	Environment string

	// Directory for session state when no database is configured
	StateDir string

	// Postgres to keep session state in. Takes precedence over StateDir
	DatabaseDSN string

	// Redis for shared query cache. In-process cache when empty
	RedisAddr string

	// Outgoing requests per second, 0 means no limit
	RateLimit float64

	// Per request timeout
	Timeout time.Duration
}

func NewConfig() *Config {
	stateDir := defaultStateDir
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, defaultStateDir)
	}

	return &Config{
		APIURL:      defaultAPIURL,
		LogLevel:    defaultLoggingLevel,
		Environment: defaultEnvironment,
		StateDir:    stateDir,
		Timeout:     30 * time.Second,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}
	setFloat := func(o *float64) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*o = v
			return nil
		}
	}
	setDuration := func(o *time.Duration) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			v, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			*o = v
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"API_URL":      setString(&c.APIURL),
		"LOG_LEVEL":    setString(&c.LogLevel),
		"ENVIRONMENT":  setString(&c.Environment),
		"STATE_DIR":    setString(&c.StateDir),
		"DATABASE_URI": setString(&c.DatabaseDSN),
		"REDIS_ADDR":   setString(&c.RedisAddr),
		"RATE_LIMIT":   setFloat(&c.RateLimit),
		"TIMEOUT":      setDuration(&c.Timeout),
	}

	var errs []error
	for key, parseFn := range envMap {
		if err := parseFn(getenv(envPrefix + key)); err != nil {
			errs = append(errs, errors.New(envPrefix+key+": "+err.Error()))
		}
	}
	return errors.Join(errs...)
}

// Register flags on fs. Current values become flag defaults so flags win over env
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.APIURL, "api-url", "u", c.APIURL, "Admin API base URL")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVar(&c.StateDir, "state-dir", c.StateDir, "Directory for session state")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Postgres connection string for session state")
	fs.StringVar(&c.RedisAddr, "redis", c.RedisAddr, "Redis address for shared query cache")
	fs.Float64Var(&c.RateLimit, "rate-limit", c.RateLimit, "Max requests per second, 0 means no limit")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Request timeout")
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("eventdesk", pflag.ContinueOnError)
	c.BindFlags(fs)
	return fs.Parse(args)
}
