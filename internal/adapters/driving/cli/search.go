package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

var (
	searchID      int64
	searchDaire   string
	searchEsas    string
	searchKarar   string
	searchKeyword string
	searchYear    int
	searchFrom    string
	searchTo      string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the decision metadata index",
	Long: `Searches stored decision metadata. Filters combine with AND; with no
filters the most recent records are listed. At most 20 rows are
returned.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int64Var(&searchID, "id", 0, "exact record id")
	searchCmd.Flags().StringVar(&searchDaire, "daire", "", "chamber name (substring match)")
	searchCmd.Flags().StringVar(&searchEsas, "esas", "", "case filing number, e.g. 2011/2628")
	searchCmd.Flags().StringVar(&searchKarar, "karar", "", "decision number, e.g. 2011/3698")
	searchCmd.Flags().StringVar(&searchKeyword, "keyword", "", "keyword in the summary")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "decision year")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest decision date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest decision date (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if readService == nil {
		return errors.New("read service not configured")
	}

	filters := domain.SearchFilters{
		ID:        searchID,
		Daire:     searchDaire,
		EsasNo:    searchEsas,
		KararNo:   searchKarar,
		Keyword:   searchKeyword,
		Year:      searchYear,
		StartDate: searchFrom,
		EndDate:   searchTo,
	}

	entries, err := readService.Search(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, entries)
	}
	return outputSearchTable(cmd, entries)
}

func outputSearchJSON(cmd *cobra.Command, entries []domain.IndexEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range entries {
		e := &entries[i]
		cmd.Printf("  [%d] %d  %s\n", i+1, e.ID, deref(e.Daire))
		cmd.Printf("      E. %s  K. %s  %s\n", deref(e.EsasNo), deref(e.KararNo), deref(e.KararTarihi))
		if ozet := firstLine(e.Ozet); ozet != "" {
			cmd.Printf("      %s\n", ozet)
		}
		cmd.Println()
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
