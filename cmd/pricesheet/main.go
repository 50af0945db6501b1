// Package main provides the CLI entry point for pricesheet-go.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pricesheet-go/internal/config"
	"github.com/ukaji3/pricesheet-go/internal/logging"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricesheet",
		Short: "Extract product records from supplier price lists",
		Long: `pricesheet-go reads supplier price-list spreadsheets (xlsx, csv),
locates header rows, classifies columns and outputs normalized product
records as JSON.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.AddCommand(newParseCmd(), newClassifyCmd(), newOrderCmd(), newJournalCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env and the environment config, then configures logging.
func setup(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if envErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	}
	log.Debug().Str("config", cfg.String()).Msg("Configuration loaded")

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Parse.Timeout)
	cobra.OnFinalize(cancel)
	cmd.SetContext(ctx)
	return nil
}
