package cli

import (
	"fmt"
	"io"
	"os"

	apdnumeric "github.com/rangekit/pgrange/ext/apd-numeric"
	numeric "github.com/rangekit/pgrange/ext/shopspring-numeric"
	"github.com/rangekit/pgrange/log/zerologadapter"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/rangekit/pgrange/sqltext"
	"github.com/rangekit/pgrange/tracelog"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Environment variables read when the matching flag is not set.
const (
	envLogLevel      = "PGRANGE_LOG_LEVEL"
	envLogFormat     = "PGRANGE_LOG_FORMAT"
	envNumeric       = "PGRANGE_NUMERIC"
	envServerVersion = "PGRANGE_SERVER_VERSION"
)

// Config is the resolved configuration of one command invocation.
type Config struct {
	LogLevel      tracelog.LogLevel
	LogFormat     string
	Numeric       string
	ServerVersion string
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "none", "trace, debug, info, warn, error or none ($"+envLogLevel+")")
	flags.String("log-format", "console", "console or json ($"+envLogFormat+")")
	flags.String("numeric", "shopspring", "numrange implementation: shopspring or apd ($"+envNumeric+")")
	flags.String("server-version", "", "PostgreSQL server version SQL is rendered for, latest if empty ($"+envServerVersion+")")
}

// lookup returns the value of a flag if it was set on the command line, then the environment variable, then the
// flag default.
func lookup(flags *pflag.FlagSet, name, env string) (string, error) {
	if flags.Changed(name) {
		return flags.GetString(name)
	}
	if v, ok := os.LookupEnv(env); ok {
		return v, nil
	}
	return flags.GetString(name)
}

func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}

	level, err := lookup(flags, "log-level", envLogLevel)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel, err = tracelog.LogLevelFromString(level)
	if err != nil {
		return nil, fmt.Errorf("%s: %q", err, level)
	}

	cfg.LogFormat, err = lookup(flags, "log-format", envLogFormat)
	if err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	cfg.Numeric, err = lookup(flags, "numeric", envNumeric)
	if err != nil {
		return nil, err
	}
	switch cfg.Numeric {
	case "shopspring", "apd":
	default:
		return nil, fmt.Errorf("invalid numeric implementation %q", cfg.Numeric)
	}

	cfg.ServerVersion, err = lookup(flags, "server-version", envServerVersion)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newMap returns the type map with numrange backed by the configured implementation.
func (cfg *Config) newMap() *pgtype.Map {
	m := pgtype.NewMap()
	switch cfg.Numeric {
	case "apd":
		apdnumeric.Register(m)
	default:
		numeric.Register(m)
	}
	return m
}

func (cfg *Config) dialect() (*sqltext.Dialect, error) {
	return sqltext.ParseDialect(cfg.ServerVersion)
}

// traceLog returns a tracer that logs to w, or nil when logging is off.
func (cfg *Config) traceLog(w io.Writer) *tracelog.TraceLog {
	if cfg.LogLevel == tracelog.LogLevelNone {
		return nil
	}

	var zl zerolog.Logger
	if cfg.LogFormat == "json" {
		zl = zerolog.New(w).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	}

	return &tracelog.TraceLog{
		Logger:   zerologadapter.NewLogger(zl),
		LogLevel: cfg.LogLevel,
	}
}
