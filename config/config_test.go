package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitvec/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	cfg := config.DefaultConfig()
	req.NoError(cfg.Validate())
	req.Equal(zapcore.InfoLevel, cfg.Level())

	cfg.MaxBits = config.MaxMaxBits + 1
	req.Error(cfg.Validate())

	cfg.MaxBits = config.MinMaxBits - 1
	req.Error(cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.DataDir = ""
	req.Error(cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.LogLevel = "loud"
	req.Error(cfg.Validate())
	req.Equal(zapcore.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	dir := t.TempDir()
	vip := viper.New()
	vip.Set("datadir", dir)
	vip.Set("max-bits", 4096)
	vip.Set("log-level", "debug")

	cfg, err := config.Load(vip)
	req.NoError(err)
	req.Equal(filepath.Clean(dir), filepath.Clean(cfg.DataDir))
	req.EqualValues(4096, cfg.MaxBits)
	req.False(cfg.DisableSpaceChecks)
	req.Equal(zapcore.DebugLevel, cfg.Level())

	cfg, err = config.Load(viper.New())
	req.NoError(err)
	req.Equal(config.DefaultConfig().MaxBits, cfg.MaxBits)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	content := "datadir = \"" + filepath.ToSlash(dir) + "\"\nmax-bits = 64\ndisable-space-checks = true\n"
	req.NoError(os.WriteFile(file, []byte(content), 0o600))

	vip := viper.New()
	vip.SetConfigFile(file)
	req.NoError(vip.ReadInConfig())

	cfg, err := config.Load(vip)
	req.NoError(err)
	req.EqualValues(64, cfg.MaxBits)
	req.True(cfg.DisableSpaceChecks)

	vip.Set("max-bits", 1)
	_, err = config.Load(vip)
	req.Error(err)
}
