package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/app"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the signal engine",
	Long: `Starts the trading signal engine, which will:
1. Scan active markets from the Gamma API on a fixed interval
2. Enrich candidates with orderbook depth from the CLOB WebSocket feed
3. Run every registered strategy and gate signals through risk limits
4. Size surviving signals with fractional Kelly and execute them

Use --strategy to restrict the run to a subset of strategies.`,
	RunE: runEngine,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringSliceP("strategy", "s", nil, "Run only the named strategies (repeatable)")
}

func runEngine(cmd *cobra.Command, args []string) error {
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
	strategies, _ := cmd.Flags().GetStringSlice("strategy")

	// Create app with options
	opts := &app.Options{
		Strategies: strategies,
	}

	application, err := app.New(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	// Run app
	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
