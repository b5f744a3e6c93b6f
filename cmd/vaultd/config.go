package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// Config holds the daemon configuration. Values come from flags,
// VAULTD_* environment variables and an optional config file, in that
// order of precedence.
type Config struct {
	Home  string    `mapstructure:"home"`
	Bind  string    `mapstructure:"bind"`
	Debug bool      `mapstructure:"debug"`
	Log   LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, error
	Pretty bool   `mapstructure:"pretty"` // human-readable console output
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".vaultd")
}

// newViper returns a viper instance with the defaults and environment
// binding of the daemon.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("home", defaultHome())
	v.SetDefault("bind", server.DefaultBind)
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// VAULTD_LOG_LEVEL -> log.level
	v.SetEnvPrefix("VAULTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file, if present, and returns the merged
// configuration. An explicitly given file must exist.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vaultd")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(v.GetString("home"), "config"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(errors.ErrInput, "reading config file: %s", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling config: %s", err)
	}
	return &cfg, nil
}

// newLogger returns the application logger. Every line carries the id of
// this process so that restarts can be told apart.
func newLogger(conf LogConfig, w io.Writer) log.Logger {
	if conf.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("instance", uuid.New().String()).
		Logger()
	return server.NewLogger(zl).With("module", "vaultd")
}
