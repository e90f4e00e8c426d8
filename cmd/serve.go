package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildsy/buildsy-backend/api"
	"github.com/buildsy/buildsy-backend/auth"
	"github.com/buildsy/buildsy-backend/config"
	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/llm"
	"github.com/buildsy/buildsy-backend/metrics"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/buildsy/buildsy-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	log.Info().Msg("Initializing app...")

	db, err := openDatabase()
	if err != nil {
		return err
	}
	if config.GetBool(cfg, "AUTO_MIGRATE", false) {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("Schema migrated")
	}

	verifier, err := auth.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	gateway, err := llm.NewOpenAI(cfg)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	registry, err := prompts.Default()
	if err != nil {
		return fmt.Errorf("prompts: %w", err)
	}

	m := metrics.New()
	chat := services.NewChatService(registry, gateway, config.GetSeconds(cfg, "LLM_TIMEOUT_SECONDS", 60), m)

	server, err := api.NewServer(api.Dependencies{
		Database: database.New(db),
		Verifier: verifier,
		Chat:     chat,
		Metrics:  m,
	}, cfg)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
