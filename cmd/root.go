package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/geoapi-tools/ttsearch/config"
	"github.com/geoapi-tools/ttsearch/tomtom"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *tomtom.Client

	// Command flags
	filterExpr string
	preset     string
	limitFlag  int
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ttsearch",
	Short: "Search Dutch addresses through the TomTom fuzzy search API",
	Long: `ttsearch looks up Dutch addresses using the TomTom fuzzy search API.

Rate limiting is handled transparently: when the API returns 429, the lookup
and everything submitted during the retry delay are batched into a single
retry wave instead of hammering the endpoint.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

// SetVersion sets the version information for the CLI
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration, logger and search client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	opts := []tomtom.Option{
		tomtom.WithAPIKey(cfg.TomTom.APIKey),
		tomtom.WithTimeout(cfg.TomTom.Timeout),
		tomtom.WithRetryDelay(cfg.TomTom.RetryDelay),
	}

	// Command-line limit wins over the config file
	limit := cfg.TomTom.Limit
	if cmd.Flags().Changed("limit") {
		limit = limitFlag
	}
	if limit > 0 {
		opts = append(opts, tomtom.WithLimit(limit))
	}

	client, err = tomtom.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
