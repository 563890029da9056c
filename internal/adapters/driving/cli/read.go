package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Print the full text of a decision",
	Long: `Resolves the given record id through the metadata index, downloads
the blob batch it points into and prints the decision's full text.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	if readService == nil {
		return errors.New("read service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: id must be numeric, got %q", domain.ErrInvalidInput, args[0])
	}

	obj, err := readService.ReadDecision(cmd.Context(), id, nil)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("no stored decision with id %d", id)
		case errors.Is(err, domain.ErrInconsistentData):
			return fmt.Errorf("stored batch for id %d is inconsistent: %w", id, err)
		default:
			return fmt.Errorf("read failed: %w", err)
		}
	}

	cmd.Printf("%s  E. %s  K. %s  %s\n\n", deref(obj.Daire), deref(obj.EsasNo), deref(obj.KararNo), deref(obj.KararTarihi))
	cmd.Println(obj.Content)
	return nil
}
