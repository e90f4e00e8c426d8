package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/buildsy/buildsy-backend/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     map[string]string
)

var rootCmd = &cobra.Command{
	Use:          "buildsy",
	Short:        "Buildsy project brainstorming API and client",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file to load before reading the environment")
}

// loadConfig reads .env, the process environment and, when
// SSM_PARAMETER_PATH is set, the SSM parameters under that path.
func loadConfig(ctx context.Context) error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading %s: %v\n", envFile, err)
	}
	cfg = config.New()
	setupLogging(cfg)

	prefix := config.GetString(cfg, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ssmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := config.NewSSMClient(ssmCtx, config.GetString(cfg, "AWS_REGION", ""))
	if err != nil {
		return err
	}
	loaded, err := config.LoadSSM(ssmCtx, client, prefix, cfg)
	if err != nil {
		return err
	}
	log.Info().Int("parameters", loaded).Str("path", prefix).Msg("Loaded configuration from SSM")
	setupLogging(cfg)
	return nil
}

// setupLogging applies LOG_LEVEL and LOG_PRETTY to the global logger.
func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// getenv reads the loaded configuration with a fallback.
func getenv(key, fallback string) string {
	return config.GetString(cfg, key, fallback)
}
