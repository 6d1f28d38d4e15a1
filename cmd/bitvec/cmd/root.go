// Package cmd implements the bitvec command line tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitvec/config"
	"github.com/spacemeshos/bitvec/persistence"
)

var (
	Version = "0.0.0"
	Commit  = ""
)

const defaultConfigFileName = "config.toml"

var defaultConfigFile = filepath.Join(config.DefaultHomeDir, defaultConfigFileName)

// app holds the state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	vip    *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{vip: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "bitvec",
		Short: "Store and inspect bit vectors",
		Long: `bitvec parses, displays and stores growable bit vectors.
Vectors are kept as checksummed files in the data directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	setFlags(rootCmd.PersistentFlags(), a.vip)

	rootCmd.AddCommand(
		newShowCmd(),
		newPutCmd(a),
		newGetCmd(a),
		newRmCmd(a),
		newLsCmd(a),
		newDumpCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setFlags(flags *pflag.FlagSet, vip *viper.Viper) {
	def := config.DefaultConfig()

	flags.String("config", "",
		fmt.Sprintf("Path to configuration file (default %s)", defaultConfigFile))

	flags.String("datadir", def.DataDir,
		"The directory that contains the stored bit vectors")

	flags.Uint64("max-bits", def.MaxBits,
		"The maximum length of a stored bit vector")

	flags.Bool("disable-space-checks", def.DisableSpaceChecks,
		"Whether to skip the available disk space check before writes")

	flags.String("log-level", def.LogLevel,
		"Log level (debug, info, warn, error)")

	if err := vip.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func (a *app) setup(logOutput io.Writer) error {
	if err := loadConfigFile(a.vip); err != nil {
		return err
	}

	cfg, err := config.Load(a.vip)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Level(), logOutput)
	return nil
}

// loadConfigFile reads the file given with --config, or the default config
// file if it exists. Flags set on the command line take precedence over it.
func loadConfigFile(vip *viper.Viper) error {
	fileLocation := vip.GetString("config")
	if fileLocation == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil
		}
		fileLocation = defaultConfigFile
	}

	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func (a *app) store() (*persistence.Store, error) {
	return persistence.NewStoreFromConfig(a.cfg, persistence.WithLogger(a.logger))
}
