package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "RIVETER"
	configFileName = ".riveter"
	configFileType = "yaml"

	cfgKeyDeep     = "deep"
	cfgKeyLogLevel = "log_level"
	cfgKeyDebug    = "debug"

	defaultLogLevel = "warn"
)

// app carries state shared by subcommands once the root pre-run has loaded
// the configuration.
type app struct {
	configFile string
	cfg        *viper.Viper
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "riveter",
		Short: "Build entity hierarchies from YAML definitions",
		Long: `riveter wires entities together from a YAML definition file: inheritance
with shallow or deep shared members, composition with construction hooks,
and mixins. It can also validate definitions and deep-merge YAML documents.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./.riveter.yaml)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().Bool("debug", false, "shorthand for --log-level debug")

	root.AddCommand(
		newBuildCmd(a),
		newMergeCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads configuration and builds the logger. Flags win over
// environment variables, which win over the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.BindPFlag(cfgKeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}

	if err := cfg.BindPFlag(cfgKeyDebug, cmd.Flags().Lookup("debug")); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", cfgKeyLogLevel, err)
	}

	if cfg.GetBool(cfgKeyDebug) {
		level = log.DebugLevel
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "riveter",
		Level:  level,
	})

	if used := cfg.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "file", used)
	}

	return nil
}

// loadConfig reads the config file, if any, and the RIVETER_* environment.
// A missing default config file is not an error; a missing explicit one is.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDeep, false)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyDebug, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
