package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	// 128 GiB of bit vector data.
	MaxMaxBits = 1 << 40
	MinMaxBits = 8
)

const (
	DefaultDataDirName = "data"
	DefaultLogLevel    = "info"

	// 128 MiB of bit vector data.
	DefaultMaxBits = 1 << 30
)

var (
	DefaultHomeDir = filepath.Join(smutil.GetUserHomeDirectory(), "bitvec")
	DefaultDataDir = filepath.Join(DefaultHomeDir, DefaultDataDirName)
)

type Config struct {
	DataDir            string `mapstructure:"datadir"`
	MaxBits            uint64 `mapstructure:"max-bits"`
	DisableSpaceChecks bool   `mapstructure:"disable-space-checks"`
	LogLevel           string `mapstructure:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		MaxBits:  DefaultMaxBits,
		LogLevel: DefaultLogLevel,
	}
}

func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("invalid `DataDir`; expected: a path, given: empty")
	}

	if cfg.MaxBits > MaxMaxBits {
		return fmt.Errorf("invalid `MaxBits`; expected: <= %d, given: %d", uint64(MaxMaxBits), cfg.MaxBits)
	}

	if cfg.MaxBits < MinMaxBits {
		return fmt.Errorf("invalid `MaxBits`; expected: >= %d, given: %d", MinMaxBits, cfg.MaxBits)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`: %w", err)
	}

	return nil
}

// Level returns the parsed log level, falling back to info.
func (cfg *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Load builds a config from the defaults overridden by whatever vip holds,
// then validates it.
func Load(vip *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DataDir != "" {
		cfg.DataDir = smutil.GetCanonicalPath(cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
