package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/strategy"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listStrategiesCmd = &cobra.Command{
	Use:   "list-strategies",
	Short: "List the registered strategies",
	Long:  `Displays every registered strategy with its tier and required enrichment data.`,
	RunE:  runListStrategies,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listStrategiesCmd)
}

func runListStrategies(cmd *cobra.Command, args []string) error {
	strategies := strategy.DefaultRegistry().All()
	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].ID() < strategies[j].ID()
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tTIER\tDATA")

	for _, s := range strategies {
		data := strings.Join(s.RequiredData(), ", ")
		if data == "" {
			data = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID(), s.Name(), s.Tier(), data)
	}

	err := w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	fmt.Printf("\n%d strategies.\n", len(strategies))

	return nil
}
