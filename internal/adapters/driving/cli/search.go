package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// errRateLimited is reported when GitHub refuses a search for quota reasons.
var errRateLimited = errors.New("GitHub API rate limit exceeded. Wait for 60 seconds and try again.") //nolint:staticcheck // shown verbatim

var (
	searchPage  int
	searchPages int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search GitHub repositories",
	Long: `Searches GitHub repositories and prints their names and URLs.

All arguments are joined into one query, so GitHub qualifiers work as usual:

  reposearch search bubbletea language:go
  reposearch search --pages 3 "terminal ui"
  reposearch search --page 2 --json cobra`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "fetch only this page")
	searchCmd.Flags().IntVarP(&searchPages, "pages", "n", 1, "number of pages to fetch, starting at page 1")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.New("query must not be empty")
	}

	if searchPage > 1 && searchPages > 1 {
		return errors.New("--page and --pages cannot be combined")
	}

	if searchService == nil {
		return errors.New("search service not configured")
	}

	var (
		result domain.SearchPage
		err    error
	)
	if searchPage > 1 {
		result, err = searchService.Search(cmd.Context(), query, searchPage)
	} else {
		result, err = searchService.SearchPages(cmd.Context(), query, searchPages)
	}

	// Pages fetched before a failure are still worth showing.
	if len(result.Repositories) > 0 || err == nil {
		if outErr := outputSearch(cmd, query, result); outErr != nil {
			return outErr
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrLimitExceeded):
		return errRateLimited
	default:
		return fmt.Errorf("search failed: %w", err)
	}
}

func outputSearch(cmd *cobra.Command, query string, result domain.SearchPage) error {
	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	return outputSearchTable(cmd, query, result)
}

func outputSearchJSON(cmd *cobra.Command, result domain.SearchPage) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, result domain.SearchPage) error {
	if len(result.Repositories) == 0 {
		cmd.Println("No repositories found.")
		return nil
	}

	cmd.Println("Repositories:")
	cmd.Println()
	for i, repo := range result.Repositories {
		cmd.Printf("  [%d] %s\n", i+1, repo.FullName)
		cmd.Printf("      %s\n", repo.URL)
	}
	cmd.Println()

	if result.HasNextPage() {
		cmd.Printf("More results: reposearch search --page %d %q\n", result.NextPage, query)
	}
	return nil
}
