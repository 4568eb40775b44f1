package strategy

import (
	"context"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// Ensemble combines the probability estimates of several sub-strategies
// into a single weighted consensus and trades markets where the consensus
// disagrees with the price.
type Ensemble struct {
	minSubSignals int
	minEdge       float64
	maxConfidence float64
}

// NewEnsemble creates the weighted-consensus strategy.
func NewEnsemble() *Ensemble {
	return &Ensemble{
		minSubSignals: 2,
		minEdge:       0.03,
		maxConfidence: 0.80,
	}
}

func (s *Ensemble) Name() string           { return "ensemble_consensus" }
func (s *Ensemble) Tier() string           { return "C" }
func (s *Ensemble) ID() int                { return 100 }
func (s *Ensemble) RequiredData() []string { return nil }

// Scan passes through every active market with a YES price; the ensemble
// has no filter of its own, it scores whatever sub-signals arrive.
func (s *Ensemble) Scan(markets []types.Market) []types.Opportunity {
	opps := make([]types.Opportunity, 0)
	for i := range markets {
		m := &markets[i]
		if !m.Active {
			continue
		}
		price, ok := m.OutcomePrice("yes")
		if !ok {
			continue
		}
		opps = append(opps, types.Opportunity{
			MarketID:    m.ConditionID,
			Question:    m.Question,
			MarketPrice: price,
			Category:    m.Category,
			Tokens:      m.Tokens,
		})
	}
	OpportunitiesScannedTotal.WithLabelValues(s.Name()).Add(float64(len(opps)))
	return opps
}

// Analyze computes the weighted average probability across sub-signals.
// It requires at least two entries and a strictly positive total weight.
// Confidence is min(0.80, totalWeight/count), a proxy for average
// per-signal weight, not a calibrated probability.
func (s *Ensemble) Analyze(opp types.Opportunity) (types.Signal, bool) {
	subs := opp.Enrichment.SubSignals
	if len(subs) < s.minSubSignals {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, sub := range subs {
		totalWeight += sub.Weight
		weightedSum += sub.Prob * sub.Weight
	}
	if totalWeight <= 0 {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	weightedProb := weightedSum / totalWeight
	edge := weightedProb - opp.MarketPrice
	if abs(edge) < s.minEdge {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	tokenID, ok := types.TokenIDForOutcome(opp.Tokens, "yes")
	if !ok {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	confidence := totalWeight / float64(len(subs))
	if confidence > s.maxConfidence {
		confidence = s.maxConfidence
	}

	SignalsEmittedTotal.WithLabelValues(s.Name()).Inc()
	return types.Signal{
		MarketID:      opp.MarketID,
		TokenID:       tokenID,
		Side:          types.SideForEdge(weightedProb, opp.MarketPrice),
		EstimatedProb: weightedProb,
		MarketPrice:   opp.MarketPrice,
		Confidence:    confidence,
		StrategyName:  s.Name(),
		Metadata: map[string]float64{
			"weighted_prob": weightedProb,
			"num_signals":   float64(len(subs)),
			"total_weight":  totalWeight,
		},
	}, true
}

func (s *Ensemble) Execute(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool) {
	return executeSignal(ctx, sig, size, client)
}
