package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "VOLTRAGGIO"

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.settings_path", "settings.json")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.log_file", "")
	v.SetDefault("handler.timeout", "30s")
	v.SetDefault("supervisor.restart_delay", "1s")
	v.SetDefault("supervisor.max_restarts", 0)
}

// initConfig layers defaults, config.toml, .env and VOLTRAGGIO_* variables.
// A missing config file or .env is not an error.
func initConfig(v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfgFile := strings.TrimSpace(v.GetString("config"))
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	log.Debug().Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			log.Debug().Msg("no config file, using defaults")
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	return nil
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogging routes the global logger to stderr and, when logFile is set,
// to a file truncated on every start.
func setupLogging(level, logFile string) (io.Closer, error) {
	zerolog.SetGlobalLevel(parseLogLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339

	if logFile == "" {
		log.Logger = log.Output(os.Stderr)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(os.Stderr, f))
	return f, nil
}

func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Dur("fallback", fallback).Msg("invalid duration in config")
		return fallback
	}
	return d
}
