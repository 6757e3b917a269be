package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roobyn/sap-bi/internal/buildinfo"
	"github.com/roobyn/sap-bi/internal/logging"
)

// global flags
var (
	userConfig string
	serverAddr string
)

const ServerKey = "server"

var f = NewFactory()

var rootCmd = &cobra.Command{
	Use:   "biscan",
	Short: fmt.Sprintf("BusinessObjects report scanner (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `biscan searches Web Intelligence reports for usages of named result
objects. It talks to the BIPRWS REST API of a SAP BusinessObjects server:
it logs on, walks a folder of Webi documents, scans each document's
data-provider query specifications and prints where the objects are used.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, configErr := initConfig()
		logging.Init(nil)
		if configErr != nil { // handle error after logging is initialized
			return configErr
		}
		if configPath != "" {
			log.Debug().Msgf("using config file: %s", configPath)
		}
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if errors.As(err, &BeQuietError{}) {
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("execution failed")
		os.Exit(1)
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	// secrets like BISCAN_PASSWORD commonly live in a .env next to the
	// working directory
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&userConfig, "user-config", "",
		"User configuration file for default values (default is $HOME/.biscan.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(logging.LevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	_ = viper.BindPFlag(logging.FormatKey, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(logging.NoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "",
		"BIPRWS base URL, e.g. http://bi-host:6405/biprws")
	_ = viper.BindPFlag(ServerKey, rootCmd.PersistentFlags().Lookup("server"))

	viper.SetEnvPrefix("BISCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))

	viper.AutomaticEnv()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initConfig() (string, error) {
	// reads in config file and ENV variables if set.
	if userConfig != "" {
		viper.SetConfigFile(userConfig)
	} else {
		// search order: current dir, $HOME, XDG config
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		config, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(config + "/biscan")
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".biscan")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundError) {
			return "", err
		}
	} else {
		return viper.ConfigFileUsed(), nil
	}

	return "", nil
}
