// Package config loads hzmeta settings from an optional YAML file,
// environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "HZMETA_CONFIG"

// Supported drivers. DriverPgx uses the native pgx pool, the rest go
// through database/sql.
const (
	DriverPgx       = "pgx"
	DriverPgxStdlib = "pgx-stdlib"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite3"
)

const (
	keyDatabaseURL       = "database_url"
	keyDriver            = "driver"
	keyPlaceholder       = "placeholder"
	keyReadOnly          = "read_only"
	keyQueryTimeout      = "query_timeout"
	keyMaxConns          = "max_conns"
	keyLogLevel          = "log_level"
	keyListenAddr        = "listen_addr"
	keyRateLimit         = "rate_limit"
	keyCORSOrigin        = "cors_origin"
	keyReadHeaderTimeout = "read_header_timeout"
	keyIdleTimeout       = "idle_timeout"
	keyShutdownTimeout   = "shutdown_timeout"
)

// flagKeys are the settings RegisterFlags exposes on the command line.
var flagKeys = []string{keyDatabaseURL, keyDriver, keyPlaceholder, keyLogLevel}

type Config struct {
	DatabaseURL  string
	Driver       string
	Placeholder  string // empty means the driver's native style
	ReadOnly     bool
	QueryTimeout time.Duration
	MaxConns     int32
	LogLevel     slog.Level

	ListenAddr        string
	RateLimit         float64 // requests per minute per client IP
	CORSOrigin        string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// PlaceholderStyle returns the configured override, or ok=false when the
// driver default applies.
func (c *Config) PlaceholderStyle() (style service.PlaceholderStyle, ok bool) {
	if c.Placeholder == "" {
		return 0, false
	}
	style, err := service.ParsePlaceholderStyle(c.Placeholder)
	if err != nil {
		return 0, false
	}
	return style, true
}

// RegisterFlags adds the flags Load understands to fs. Flag names are the
// lowercase keys with dashes, e.g. --database-url.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file (env "+ConfigEnv+")")
	fs.String("database-url", "", "connection string (env DATABASE_URL)")
	fs.String("driver", "", "pgx, pgx-stdlib, sqlserver or sqlite3 (env DRIVER)")
	fs.String("placeholder", "", "dollar, question, atp or inline (env PLACEHOLDER)")
	fs.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
}

// Load resolves configuration. Precedence is flags, then environment, then
// the config file, then defaults. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range flagKeys {
			f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
			}
		}
	}

	if path := configPath(fs); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDriver, DriverPgx)
	v.SetDefault(keyReadOnly, true)
	v.SetDefault(keyQueryTimeout, "10s")
	v.SetDefault(keyMaxConns, 4)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyListenAddr, ":8080")
	v.SetDefault(keyRateLimit, 600)
	v.SetDefault(keyReadHeaderTimeout, "10s")
	v.SetDefault(keyIdleTimeout, "120s")
	v.SetDefault(keyShutdownTimeout, "5s")

	// Keys without a default still need to be known for AutomaticEnv.
	for _, k := range []string{keyDatabaseURL, keyPlaceholder, keyCORSOrigin} {
		_ = v.BindEnv(k)
	}
}

func configPath(fs *pflag.FlagSet) string {
	if fs != nil {
		if p, err := fs.GetString("config"); err == nil && p != "" {
			return p
		}
	}
	return os.Getenv(ConfigEnv)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(v.GetString(keyDatabaseURL)),
		Driver:      strings.ToLower(strings.TrimSpace(v.GetString(keyDriver))),
		Placeholder: strings.ToLower(strings.TrimSpace(v.GetString(keyPlaceholder))),
		ListenAddr:  v.GetString(keyListenAddr),
		CORSOrigin:  v.GetString(keyCORSOrigin),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.Driver {
	case DriverPgx, DriverPgxStdlib, DriverSQLServer, DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DRIVER value %q: must be pgx, pgx-stdlib, sqlserver, or sqlite3", cfg.Driver)
	}

	if cfg.Placeholder != "" {
		if _, err := service.ParsePlaceholderStyle(cfg.Placeholder); err != nil {
			return nil, fmt.Errorf("invalid PLACEHOLDER value: %w", err)
		}
	}

	var err error
	if cfg.ReadOnly, err = cast.ToBoolE(v.Get(keyReadOnly)); err != nil {
		return nil, fmt.Errorf("invalid READ_ONLY value: %w", err)
	}

	maxConns, err := cast.ToInt32E(v.Get(keyMaxConns))
	if err != nil || maxConns <= 0 {
		return nil, fmt.Errorf("invalid MAX_CONNS value %q: must be a positive integer", v.GetString(keyMaxConns))
	}
	cfg.MaxConns = maxConns

	rate, err := cast.ToFloat64E(v.Get(keyRateLimit))
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT value %q: must be a non-negative number", v.GetString(keyRateLimit))
	}
	cfg.RateLimit = rate

	if cfg.LogLevel, err = parseLogLevel(v.GetString(keyLogLevel)); err != nil {
		return nil, err
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{keyQueryTimeout, &cfg.QueryTimeout},
		{keyReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{keyIdleTimeout, &cfg.IdleTimeout},
		{keyShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(v, d.key); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := cast.ToDurationE(v.Get(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be a positive duration", strings.ToUpper(key), v.GetString(key))
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL value %q: must be debug, info, warn, or error", s)
	}
}
