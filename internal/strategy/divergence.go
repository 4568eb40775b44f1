package strategy

import (
	"context"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/grouping"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// CorrelationDivergence groups markets by category and flags members whose
// YES price diverges from the group mean. Divergent members are expected
// to revert toward the mean. The comparison average here includes the
// member itself: every market in a category is treated as a noisy estimate
// of one shared probability.
type CorrelationDivergence struct {
	minGroupSize int
	threshold    float64
}

// DivergenceThreshold is the deviation from the group mean, in price
// units, at which a member is flagged.
const DivergenceThreshold = 0.10

// NewCorrelationDivergence creates the category-divergence strategy.
func NewCorrelationDivergence() *CorrelationDivergence {
	return &CorrelationDivergence{
		minGroupSize: grouping.MinGroupSize,
		threshold:    DivergenceThreshold,
	}
}

func (s *CorrelationDivergence) Name() string           { return "correlation_divergence" }
func (s *CorrelationDivergence) Tier() string           { return "C" }
func (s *CorrelationDivergence) ID() int                { return 86 }
func (s *CorrelationDivergence) RequiredData() []string { return nil }

// Scan partitions the batch by category and emits one opportunity per
// member whose deviation from the group mean meets the threshold.
func (s *CorrelationDivergence) Scan(markets []types.Market) []types.Opportunity {
	opps := make([]types.Opportunity, 0)
	for _, group := range grouping.ByCategory(markets, s.minGroupSize) {
		prices := make([]float64, 0, len(group.Markets))
		for i := range group.Markets {
			if p, ok := group.Markets[i].OutcomePrice("yes"); ok {
				prices = append(prices, p)
			}
		}
		if len(prices) < s.minGroupSize {
			continue
		}

		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		avg := sum / float64(len(prices))
		GroupSizeObserved.WithLabelValues("category").Observe(float64(len(prices)))

		for i := range group.Markets {
			m := &group.Markets[i]
			price, ok := m.OutcomePrice("yes")
			if !ok {
				continue
			}
			divergence := abs(price - avg)
			if divergence < s.threshold {
				continue
			}
			opps = append(opps, types.Opportunity{
				MarketID:    m.ConditionID,
				Question:    m.Question,
				MarketPrice: price,
				Category:    group.Key,
				Tokens:      m.Tokens,
				GroupAvg:    &avg,
				Divergence:  &divergence,
			})
		}
	}
	OpportunitiesScannedTotal.WithLabelValues(s.Name()).Add(float64(len(opps)))
	return opps
}

// Analyze trades toward the group mean: buy when the member is priced
// below the average, sell when above.
func (s *CorrelationDivergence) Analyze(opp types.Opportunity) (types.Signal, bool) {
	if opp.GroupAvg == nil {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}
	var divergence float64
	if opp.Divergence != nil {
		divergence = *opp.Divergence
	}
	if divergence < s.threshold {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	tokenID, ok := types.TokenIDForOutcome(opp.Tokens, "yes")
	if !ok {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	side := types.SideSell
	if opp.MarketPrice < *opp.GroupAvg {
		side = types.SideBuy
	}

	SignalsEmittedTotal.WithLabelValues(s.Name()).Inc()
	return types.Signal{
		MarketID:      opp.MarketID,
		TokenID:       tokenID,
		Side:          side,
		EstimatedProb: *opp.GroupAvg,
		MarketPrice:   opp.MarketPrice,
		Confidence:    0.45,
		StrategyName:  s.Name(),
		Metadata:      map[string]float64{"divergence": divergence, "avg_group_price": *opp.GroupAvg},
	}, true
}

func (s *CorrelationDivergence) Execute(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool) {
	return executeSignal(ctx, sig, size, client)
}
