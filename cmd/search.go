package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/geoapi-tools/ttsearch/filter"
	"github.com/geoapi-tools/ttsearch/tomtom"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query> [query...]",
	Short: "Look up addresses for one or more free-text queries",
	Long: `Look up Dutch addresses for the given free-text queries.

Multiple queries are resolved concurrently through a single client, so a
rate-limited burst is retried as one batch. Results can be narrowed with a
filter expression, for example:

  ttsearch search "dam 1" --filter 'Municipality == "Amsterdam"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to results")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "maximum results per query (1-100)")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keep, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Resolve all queries through one client so a rate-limited burst shares
	// a single retry wave. Outcomes stay independent per query.
	resultsByQuery := make([][]tomtom.Result, len(args))
	errsByQuery := make([]error, len(args))

	var g errgroup.Group
	for i, query := range args {
		g.Go(func() error {
			resultsByQuery[i], errsByQuery[i] = client.Lookup(ctx, query)
			return nil
		})
	}
	g.Wait()

	var failed int
	for i, query := range args {
		if errsByQuery[i] != nil {
			failed++
			logger.Error().Err(errsByQuery[i]).Str("query", query).Msg("Lookup failed")
			continue
		}
		resultsByQuery[i] = filter.Apply(resultsByQuery[i], keep)
	}

	if failed == len(args) {
		return fmt.Errorf("all %d lookups failed", failed)
	}

	if jsonOutput {
		return printJSON(args, resultsByQuery, errsByQuery)
	}
	printTables(args, resultsByQuery, errsByQuery)

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(args))
	}
	return nil
}

// resolveFilter determines the filter to apply, if any.
// Priority: command line filter > preset > config default.
func resolveFilter() (filter.Filter, error) {
	expression := filterExpr

	if expression == "" && preset != "" {
		presetExpr, ok := cfg.Filter.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expression = presetExpr
	}

	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}

	if expression == "" {
		return nil, nil
	}

	keep, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return keep, nil
}

func printJSON(queries []string, resultsByQuery [][]tomtom.Result, errsByQuery []error) error {
	type queryOutput struct {
		Query   string          `json:"query"`
		Results []tomtom.Result `json:"results,omitempty"`
		Error   string          `json:"error,omitempty"`
	}

	output := make([]queryOutput, 0, len(queries))
	for i, query := range queries {
		entry := queryOutput{Query: query, Results: resultsByQuery[i]}
		if errsByQuery[i] != nil {
			entry.Error = errsByQuery[i].Error()
		}
		output = append(output, entry)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func printTables(queries []string, resultsByQuery [][]tomtom.Result, errsByQuery []error) {
	for i, query := range queries {
		if errsByQuery[i] != nil {
			fmt.Printf("✗ %s: %v\n\n", query, errsByQuery[i])
			continue
		}

		results := resultsByQuery[i]
		resultText := "result"
		if len(results) != 1 {
			resultText = "results"
		}
		fmt.Printf("%s — %d %s\n", query, len(results), resultText)

		if len(results) == 0 {
			fmt.Println()
			continue
		}

		fmt.Println(strings.Repeat("━", 90))
		fmt.Printf("%-4s %-50s %-20s %s\n", "#", "ADDRESS", "MUNICIPALITY", "NUMBER")
		fmt.Println(strings.Repeat("━", 90))
		for n, result := range results {
			address := result.FreeformAddress
			if len(address) > 48 {
				address = address[:45] + "..."
			}
			fmt.Printf("%-4d %-50s %-20s %s\n", n+1, address,
				orDash(result.Municipality), orDash(result.StreetNumber))
		}
		fmt.Println(strings.Repeat("━", 90))
		fmt.Println()
	}
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test access to the TomTom search API",
	Long:  `Issue a probe lookup to verify the API key and connectivity.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Println("Testing TomTom search API access...")

	results, err := client.Lookup(context.Background(), "Dam 1 Amsterdam")
	if err != nil {
		var transportErr *tomtom.TransportError
		if errors.As(err, &transportErr) && transportErr.IsUnauthorized() {
			return fmt.Errorf("API key was rejected: %w", err)
		}
		return fmt.Errorf("probe lookup failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Probe query returned %d results\n", len(results))
	if len(cfg.Filter.Presets) > 0 {
		fmt.Printf("\nConfigured filter presets:\n")
		for name, expression := range cfg.Filter.Presets {
			fmt.Printf("  • %s: %s\n", name, expression)
		}
	}

	return nil
}
