package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json>",
	Short: "Ingest decisions from a JSON export",
	Long: `Reads a JSON array of raw decision records from a file and runs it
through the ingestion pipeline: normalisation, metadata extraction,
batched blob upload and index write. A file that does not decode as a
JSON array is fatal; individual unusable records are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	stats, err := ingestService.IngestFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d records (%d dropped, %d failed batches)\n",
		stats.Processed, stats.Dropped, stats.FailedBatches)
	return nil
}
