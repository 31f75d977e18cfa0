package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Data sources for application records.
const (
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

// Config is the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	AdmitCard AdmitCardConfig `mapstructure:"admitcard"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	AppName string `mapstructure:"app_name"`
}

type DataConfig struct {
	Source string `mapstructure:"source"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// SupabaseConfig points at a hosted PostgREST endpoint.
type SupabaseConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AdmitCardConfig struct {
	Table string `mapstructure:"table"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the configuration can start the server.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port is required"))
	}

	switch c.Data.Source {
	case SourcePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for the postgres source"))
		}
	case SourceSupabase:
		if c.Supabase.URL == "" {
			errs = append(errs, errors.New("supabase.url is required for the supabase source"))
		}
		if c.Supabase.APIKey == "" {
			errs = append(errs, errors.New("supabase.api_key is required for the supabase source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown data.source %q", c.Data.Source))
	}

	if !identifierPattern.MatchString(c.AdmitCard.Table) {
		errs = append(errs, fmt.Errorf("invalid admitcard.table %q", c.AdmitCard.Table))
	}

	return errors.Join(errs...)
}
