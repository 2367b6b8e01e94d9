// bondscan extracts bond terms from SEC filings into a per-company table.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hrseymour/bond-extractor/pkg/core/config"
	"github.com/hrseymour/bond-extractor/pkg/core/edgar"
	"github.com/hrseymour/bond-extractor/pkg/core/extract"
	"github.com/hrseymour/bond-extractor/pkg/core/llm"
	"github.com/hrseymour/bond-extractor/pkg/core/scrape"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg config.Settings

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bondscan",
	Short: "Extract bond-security terms from SEC filings",
	Long: `bondscan locates bond-relevant SEC filings for a company, converts each
document to structured plain text, and extracts coupon, maturity, call/put
and floating-rate terms into a flat table via an LLM collaborator.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load()

		configFile, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (YAML)")
	rootCmd.PersistentFlags().String("strategy", "", "filing discovery strategy: index or search")
	rootCmd.PersistentFlags().String("query", "", "full-text query (search strategy only)")
	rootCmd.PersistentFlags().StringSlice("forms", nil, "form-type filter (default: bond allow-list)")
	rootCmd.PersistentFlags().String("from", "", "start of filing date range (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("to", "", "end of filing date range (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Int("max-filings", 0, "max filings per company")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini or deepseek")
	rootCmd.PersistentFlags().String("model", "", "model name override")
	rootCmd.PersistentFlags().String("output", "", "output directory")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(scanCmd)
}

// applyFlags layers explicit command-line flags over the loaded settings.
func applyFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		cfg.Strategy = v
	}
	if v, _ := cmd.Flags().GetString("query"); v != "" {
		cfg.Query = v
	}
	if v, _ := cmd.Flags().GetStringSlice("forms"); len(v) > 0 {
		cfg.FormTypes = v
	}
	if v, _ := cmd.Flags().GetString("from"); v != "" {
		cfg.FromDate = v
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		cfg.ToDate = v
	}
	if v, _ := cmd.Flags().GetInt("max-filings"); v > 0 {
		cfg.MaxFilings = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.Provider = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
}

func searchOptions() edgar.SearchOptions {
	return edgar.SearchOptions{
		Query:      cfg.Query,
		Forms:      cfg.FormTypes,
		FromDate:   cfg.FromDate,
		ToDate:     cfg.ToDate,
		MaxResults: cfg.MaxResults,
	}
}

func newScraper() *scrape.Scraper {
	client := edgar.NewClient(cfg.Identity.Name, cfg.Identity.Email)
	fetcher := edgar.NewFetcher(client, cfg.CacheDir)

	var provider llm.Provider
	switch strings.ToLower(cfg.Provider) {
	case "deepseek":
		provider = &llm.DeepSeekProvider{Model: cfg.Model}
	default:
		provider = &llm.GeminiProvider{Model: cfg.Model}
	}
	extractor := extract.NewBondExtractor(extract.NewLLMAdapter(provider, nil))

	scraper := scrape.NewScraper(client, fetcher, extractor)
	if strings.EqualFold(cfg.Strategy, string(scrape.StrategySearch)) {
		scraper.SetStrategy(scrape.StrategySearch)
	}
	scraper.SetSearchOptions(searchOptions())
	scraper.SetMaxFilings(cfg.MaxFilings)
	scraper.SetDelay(time.Duration(cfg.DelayMs) * time.Millisecond)
	return scraper
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bondscan %s (%s)\n", version, commit)
	},
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [ticker or CIK]...",
	Short: "List bond-relevant filings for one or more companies",
	Long: `Run filing discovery only, without fetching or extraction.

Examples:
  bondscan search AES
  bondscan search --strategy search --query "subordinated notes" AES DUK
  bondscan search --forms 424B2,424B5 --from 2023-01-01 AES`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scraper := newScraper()
		filings := scraper.Locate(cmd.Context(), args)
		if len(filings) == 0 {
			return fmt.Errorf("no filings found for %s", strings.Join(args, ", "))
		}

		fmt.Printf("Found %d filings:\n", len(filings))
		for _, f := range filings {
			fmt.Printf("  %s  %-8s %-6s %s\n", f.FilingDate, f.Form, f.Ticker, f.AccessionNumber)
		}
		return nil
	},
}

// --- Scan Command ---

var scanCmd = &cobra.Command{
	Use:   "scan [ticker or CIK]...",
	Short: "Run the full extraction pipeline and write the results",
	Long: `Locate filings, fetch and normalize each document, extract bond terms,
and write bonds.csv, summary.json and report.html to the output directory.

Examples:
  bondscan scan AES
  bondscan scan --max-filings 5 --from 2024-01-01 AES DUK SO`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scraper := newScraper()
		table := scraper.Run(cmd.Context(), args)
		if len(table.Rows) == 0 {
			return fmt.Errorf("no bonds extracted for %s", strings.Join(args, ", "))
		}

		summary := scrape.Summarize(table.Rows)
		if err := writeOutputs(cfg.OutputDir, table, summary); err != nil {
			return err
		}

		fmt.Printf("\nRun %s: %d bonds from %d companies\n",
			table.RunID, summary.TotalBonds, summary.UniqueCompanies)
		fmt.Printf("Results written to %s\n", cfg.OutputDir)
		return nil
	},
}
