package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-gw/internal/config"
	"github.com/cwbudde/algo-gw/internal/logging"
)

// globalKeys maps persistent flags onto their config keys. Subcommand flags
// live under the subcommand's section, with dashes turned into underscores.
var globalKeys = map[string]string{
	"log-level": "log_level",
	"output":    "output_format",
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "gwcore",
		Short: "Gravitational-wave signal processing kernels",
		Long: `gwcore exercises the inspiral IIR filter-bank synthesis and the
F-statistic demodulation kernel on synthetic data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is ./gwcore.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", "table", "output format (table, json, yaml)")

	rootCmd.AddCommand(newIIRCmd(a), newFstatCmd(a), newLUTCmd(a))
	return rootCmd
}

// initialize reads config sources, binds cmd's flags, and builds the logger.
func (a *app) initialize(cmd *cobra.Command) error {
	if err := a.readConfig(); err != nil {
		return err
	}
	if err := a.bindFlags(cmd); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("path", used))
	}
	return nil
}

func (a *app) readConfig() error {
	v := a.v
	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gwcore")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	config.SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// bindFlags binds every flag of cmd to its config key, so that an explicitly
// set flag wins over env and file values and the rest fall through to them.
func (a *app) bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		key, ok := globalKeys[f.Name]
		if !ok {
			key = cmd.Name() + "." + strings.ReplaceAll(f.Name, "-", "_")
		}
		if err := a.v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}
