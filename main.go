package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"postcraft/backend/internal/config"
	"postcraft/backend/internal/logging"
)

var (
	v = config.NewViper()

	// Set by the root PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the server when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "postcraft",
	Short:         "postcraft - platform content generation API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file
		envErr := godotenv.Load()

		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err = logging.New(cfg.LogLevel, cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if envErr != nil {
			logger.Debug("No .env file found, using environment variables")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("port", "", "listen port (env PORT)")
	flags.String("templates", "", "prompt template file, JSON or YAML (env TEMPLATES_PATH)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	bindFlag(v, config.KeyPort, "port")
	bindFlag(v, config.KeyTemplatesPath, "templates")
	bindFlag(v, config.KeyLogLevel, "log-level")

	rootCmd.AddCommand(serveCmd, optionsCmd, promptCmd)
}

func bindFlag(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
