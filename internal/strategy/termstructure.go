package strategy

import (
	"context"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/grouping"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// TermStructure groups tenors of the same question family by stem and
// compares each member against the average of its peers. Unlike category
// divergence, the comparison average excludes the member itself: each
// tenor is judged as a potential outlier against the rest of the curve.
type TermStructure struct {
	minTenors int
	minEdge   float64
}

// TenorEdgeThreshold is the minimum gap between a member's price and its
// peer average for the tenor to count as mispriced.
const TenorEdgeThreshold = 0.04

// NewTermStructure creates the tenor-comparison strategy.
func NewTermStructure() *TermStructure {
	return &TermStructure{
		minTenors: grouping.MinGroupSize,
		minEdge:   TenorEdgeThreshold,
	}
}

func (s *TermStructure) Name() string           { return "term_structure" }
func (s *TermStructure) Tier() string           { return "C" }
func (s *TermStructure) ID() int                { return 94 }
func (s *TermStructure) RequiredData() []string { return nil }

// Scan emits one opportunity per member of every stem group, carrying the
// YES prices of its peers. Members whose peers all lack a price still
// scan; they decline at analysis.
func (s *TermStructure) Scan(markets []types.Market) []types.Opportunity {
	opps := make([]types.Opportunity, 0)
	for _, group := range grouping.ByStem(markets, s.minTenors) {
		GroupSizeObserved.WithLabelValues("stem").Observe(float64(len(group.Markets)))
		for i := range group.Markets {
			m := &group.Markets[i]
			price, ok := m.OutcomePrice("yes")
			if !ok {
				continue
			}
			peerPrices := make([]float64, 0, len(group.Markets)-1)
			for j := range group.Markets {
				if group.Markets[j].ConditionID == m.ConditionID {
					continue
				}
				if pp, ok := group.Markets[j].OutcomePrice("yes"); ok {
					peerPrices = append(peerPrices, pp)
				}
			}
			opps = append(opps, types.Opportunity{
				MarketID:    m.ConditionID,
				Question:    m.Question,
				MarketPrice: price,
				Category:    m.Category,
				Tokens:      m.Tokens,
				PeerPrices:  peerPrices,
			})
		}
	}
	OpportunitiesScannedTotal.WithLabelValues(s.Name()).Add(float64(len(opps)))
	return opps
}

// Analyze flags a tenor when its price sits far enough from the peer
// average, trading toward the peers.
func (s *TermStructure) Analyze(opp types.Opportunity) (types.Signal, bool) {
	if len(opp.PeerPrices) == 0 {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	sum := 0.0
	for _, p := range opp.PeerPrices {
		sum += p
	}
	avgPeer := sum / float64(len(opp.PeerPrices))

	edge := avgPeer - opp.MarketPrice
	if abs(edge) < s.minEdge {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	tokenID, ok := types.TokenIDForOutcome(opp.Tokens, "yes")
	if !ok {
		SignalsDeclinedTotal.WithLabelValues(s.Name()).Inc()
		return types.Signal{}, false
	}

	SignalsEmittedTotal.WithLabelValues(s.Name()).Inc()
	return types.Signal{
		MarketID:      opp.MarketID,
		TokenID:       tokenID,
		Side:          types.SideForEdge(avgPeer, opp.MarketPrice),
		EstimatedProb: avgPeer,
		MarketPrice:   opp.MarketPrice,
		Confidence:    0.45,
		StrategyName:  s.Name(),
		Metadata:      map[string]float64{"avg_peer_price": avgPeer, "edge": edge},
	}, true
}

func (s *TermStructure) Execute(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool) {
	return executeSignal(ctx, sig, size, client)
}
