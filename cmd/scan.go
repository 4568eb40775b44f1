package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/scanner"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/strategy"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scan cycle and print the signals",
	Long: `Fetches active markets from the Polymarket Gamma API, runs every
registered strategy over them once, and prints the resulting signals
without sizing or executing anything.`,
	RunE: runScan,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntP("limit", "l", 100, "Maximum number of markets to fetch")
	scanCmd.Flags().Float64P("min-volume", "m", 0, "Minimum market volume filter")
	scanCmd.Flags().StringSliceP("category", "c", nil, "Restrict the scan to the given categories")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create logger
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Get flags
	limit, _ := cmd.Flags().GetInt("limit")
	minVolume, _ := cmd.Flags().GetFloat64("min-volume")
	categories, _ := cmd.Flags().GetStringSlice("category")

	// Create scanner
	client := scanner.NewClient(cfg.PolymarketGammaURL, logger)
	marketScanner, err := scanner.New(&scanner.Config{
		Fetcher:      client,
		MinVolume:    minVolume,
		MinLiquidity: 0,
		Categories:   categories,
		FetchLimit:   limit,
		SnapshotTTL:  cfg.ScannerSnapshotTTL,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("create scanner: %w", err)
	}

	fmt.Printf("Fetching up to %d active markets from Polymarket...\n\n", limit)

	markets, err := marketScanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan markets: %w", err)
	}

	if len(markets) == 0 {
		fmt.Println("No markets passed the filters.")
		return nil
	}

	fmt.Printf("Scanned %d markets.\n\n", len(markets))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tMARKET\tSIDE\tEST\tPRICE\tEDGE\tCONF")

	count := 0
	for _, s := range strategy.DefaultRegistry().All() {
		for _, opp := range s.Scan(markets) {
			sig, ok := s.Analyze(opp)
			if !ok {
				continue
			}
			count++
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%+.3f\t%.2f\n",
				sig.StrategyName, sig.MarketID, sig.Side,
				sig.EstimatedProb, sig.MarketPrice, sig.Edge(), sig.Confidence)
		}
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Printf("\n%d signals.\n", count)

	return nil
}
