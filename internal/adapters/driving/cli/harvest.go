package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var harvestLimit int

var harvestCmd = &cobra.Command{
	Use:   "harvest [queries...]",
	Short: "Download decisions from the Yargıtay API",
	Long: `Pages through the upstream search API for each query, fetches the
full text of every hit, and ingests the results. Queries may be given
as separate arguments or comma-separated; a bare four-digit query is
treated as a decision-year filter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().IntVarP(&harvestLimit, "limit", "n", 100, "maximum records to fetch per query")
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	if harvestService == nil {
		return errors.New("harvest service not configured")
	}

	stats, err := harvestService.Harvest(cmd.Context(), args, harvestLimit)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	cmd.Printf("Fetched %d records, ingested %d (%d dropped, %d failed batches)\n",
		stats.Fetched, stats.Ingest.Processed, stats.Ingest.Dropped, stats.Ingest.FailedBatches)
	return nil
}
