// Package cli wires the cobra command tree. Services are built once in
// the root command's PersistentPreRunE from the loaded configuration
// and shared through package-level variables, so every subcommand sees
// the same backends.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emsal-labs/emsal-cli/internal/adapters/driven/blob/hub"
	"github.com/emsal-labs/emsal-cli/internal/adapters/driven/blob/local"
	"github.com/emsal-labs/emsal-cli/internal/adapters/driven/storage/postgres"
	"github.com/emsal-labs/emsal-cli/internal/adapters/driven/storage/sqlite"
	"github.com/emsal-labs/emsal-cli/internal/config"
	"github.com/emsal-labs/emsal-cli/internal/connectors/yargitay"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
	"github.com/emsal-labs/emsal-cli/internal/core/services"
	"github.com/emsal-labs/emsal-cli/internal/extract"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

var version = "0.4.0"

var (
	verbose    bool
	configPath string
	modeFlag   string
)

// Shared services, built in setupServices.
var (
	cfg            *config.Config
	metadataIndex  driven.MetadataIndex
	ingestService  driving.IngestService
	harvestService driving.HarvestService
	readService    driving.ReadService
)

var rootCmd = &cobra.Command{
	Use:   "emsal",
	Short: "Harvest and search Yargıtay court decisions",
	Long: `Emsal harvests published Yargıtay decisions into a searchable
archive: decision metadata goes to a queryable index, full texts go to
a blob store in batches, and the read path joins the two on demand.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRun: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the settings file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "storage mode: remote or local (overrides settings)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupServices loads configuration and constructs the storage
// backends and services. Commands that never touch storage skip it.
func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	// Services may already be injected, e.g. by tests.
	if readService != nil {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if modeFlag != "" {
		loaded.Mode = config.Mode(modeFlag)
	}
	if err := loaded.Validate(); err != nil {
		if config.IsMissingCredentials(err) {
			return fmt.Errorf("remote mode needs credentials (%w); set them or run with --mode local", err)
		}
		return err
	}
	cfg = loaded

	var blobs driven.BlobStore
	switch cfg.Mode {
	case config.ModeLocal:
		logger.Info("Using local storage under %s", cfg.DataDir)
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening local index: %w", err)
		}
		metadataIndex = store
		blobs, err = local.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening local blob store: %w", err)
		}
	case config.ModeRemote:
		logger.Info("Using remote storage (%s)", cfg.HubRepoID)
		store, err := postgres.NewStore(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to index database: %w", err)
		}
		metadataIndex = store
		blobs = hub.NewStore(cfg.HubBaseURL, cfg.HubRepoID, cfg.HubToken)
	}

	uploader := services.NewUploader(metadataIndex, blobs, extract.New(), cfg.BatchSize)
	ingestService = uploader
	harvestService = services.NewHarvester(yargitay.NewClient(""), uploader, cfg.PageSize)
	readService = services.NewReader(metadataIndex, blobs)
	return nil
}

func teardownServices(*cobra.Command, []string) {
	if metadataIndex != nil {
		if err := metadataIndex.Close(); err != nil {
			logger.Warn("Closing metadata index: %v", err)
		}
	}
}
