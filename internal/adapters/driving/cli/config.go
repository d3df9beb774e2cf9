package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change settings stored in ~/.reposearch/config.toml.

Keys:
  github.token                GitHub access token (GITHUB_TOKEN takes precedence)
  github.base_url             API base URL, for GitHub Enterprise
  search.per_page             repositories per page (max 100)
  search.requests_per_minute  client-side request budget
  tui.debounce_ms             pause after typing before searching`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configTokenCmd = &cobra.Command{
	Use:   "token [token]",
	Short: "Store a GitHub access token",
	Long: `Stores a GitHub personal access token in the config file.

Without an argument the token is read from stdin without echo.
A token needs no scopes to search public repositories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigToken,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTokenCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()
	values := settingsService.Values()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[GitHub]")
	cmd.Printf("  Token: %s\n", describeToken(values[domain.KeyGitHubToken]))
	cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Per page: %d\n", settings.PerPage)
	cmd.Printf("  Requests per minute: %d\n", settings.RequestsPerMinute)
	cmd.Println()

	cmd.Println("[TUI]")
	cmd.Printf("  Debounce: %s\n", settings.Debounce)

	if extra := unknownKeys(values); len(extra) > 0 {
		cmd.Println()
		cmd.Println("[Other]")
		for _, key := range extra {
			cmd.Printf("  %s: %s\n", key, values[key])
		}
	}
	return nil
}

// describeToken reports the masked token and where it comes from.
func describeToken(masked string) string {
	source := ""
	if tokenSource != nil {
		source = tokenSource()
	}

	switch {
	case source == "env":
		return "(from GITHUB_TOKEN)"
	case masked != "":
		return masked
	default:
		return "(not set, unauthenticated rate limits apply)"
	}
}

func unknownKeys(values map[string]string) []string {
	known := []string{
		domain.KeyGitHubToken, domain.KeyGitHubBaseURL,
		domain.KeyPerPage, domain.KeyRequestsPerMinute, domain.KeyDebounceMillis,
	}
	var extra []string
	for key := range values {
		if !slices.Contains(known, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return extra
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == domain.KeyGitHubToken {
		cmd.Printf("Set %s\n", key)
		return nil
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigToken(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var token string
	if len(args) == 1 {
		token = strings.TrimSpace(args[0])
	} else {
		cmd.Print("GitHub token: ")
		token = readPassword(cmd.InOrStdin())
		cmd.Println()
	}
	if token == "" {
		return errors.New("token is required")
	}

	if err := settingsService.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	cmd.Println("Token saved.")
	if tokenSource != nil && tokenSource() == "env" {
		cmd.Println("Note: GITHUB_TOKEN is set and takes precedence over the saved token.")
	}
	return nil
}
