package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/secrecy-farm-cli/internal/adapters/gateway/simulated"
	tomlrepo "github.com/bnema/secrecy-farm-cli/internal/adapters/repo/toml"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "SF"

	sessionPathKey  = "session.path"
	sessionFile     = "session"
	confirmDelayKey = "gateway.confirm_delay"
	failReasonKey   = "gateway.fail_reason"
	logLevelKey     = "log.level"
	logFormatKey    = "log.format"
	pricesKey       = "prices"
)

// loadConfig reads ~/.secrecy-farm/config.toml when present. Every key can
// be overridden from the environment with the SF_ prefix, dots replaced by
// underscores.
func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, tomlrepo.ConfigDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(sessionPathKey, filepath.Join(homeDir, tomlrepo.ConfigDir, sessionFile))
	cfg.SetDefault(confirmDelayKey, simulated.DefaultConfirmDelay)
	cfg.SetDefault(failReasonKey, "")
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault(logFormatKey, "text")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func newLogger(cfg *viper.Viper, output io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetString(logLevelKey))); err != nil {
		return nil, fmt.Errorf("parse %s: %w", logLevelKey, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch format := strings.ToLower(cfg.GetString(logFormatKey)); format {
	case "", "text":
		return slog.New(slog.NewTextHandler(output, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(output, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported %s %q (want text or json)", logFormatKey, format)
	}
}

// priceOverrides reads the [prices] table, keyed by token symbol.
func priceOverrides(cfg *viper.Viper) (map[string]decimal.Decimal, error) {
	raw := cfg.GetStringMapString(pricesKey)
	overrides := make(map[string]decimal.Decimal, len(raw))
	for symbol, value := range raw {
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("parse price for %s: %w", symbol, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("price for %s must not be negative", symbol)
		}
		overrides[strings.ToUpper(symbol)] = price
	}
	return overrides, nil
}
