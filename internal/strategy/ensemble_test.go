package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

func ensembleOpp(price float64, subs []types.SubSignal) types.Opportunity {
	return types.Opportunity{
		MarketID:    "m1",
		MarketPrice: price,
		Tokens:      []types.Token{{TokenID: "tok-yes", Outcome: "Yes"}},
		Enrichment:  types.Enrichment{SubSignals: subs},
	}
}

func TestEnsembleScanPassesActiveMarkets(t *testing.T) {
	s := NewEnsemble()

	inactive := yesNoMarket("m2", "q2", "crypto", 0.5)
	inactive.Active = false
	noPrice := types.Market{ConditionID: "m3", Active: true}

	opps := s.Scan([]types.Market{
		yesNoMarket("m1", "q1", "crypto", 0.40),
		inactive,
		noPrice,
	})

	require.Len(t, opps, 1)
	assert.Equal(t, "m1", opps[0].MarketID)
}

func TestEnsembleWeightedConsensus(t *testing.T) {
	s := NewEnsemble()

	opp := ensembleOpp(0.40, []types.SubSignal{
		{Strategy: "a", Prob: 0.60, Weight: 0.50},
		{Strategy: "b", Prob: 0.70, Weight: 0.50},
	})

	sig, ok := s.Analyze(opp)
	require.True(t, ok)

	assert.InDelta(t, 0.65, sig.EstimatedProb, 1e-12)
	assert.Equal(t, types.SideBuy, sig.Side)
	assert.InDelta(t, 0.50, sig.Confidence, 1e-12, "total weight over count")
	assert.InDelta(t, 2, sig.Metadata["num_signals"], 1e-12)
}

func TestEnsembleConfidenceCap(t *testing.T) {
	s := NewEnsemble()

	opp := ensembleOpp(0.40, []types.SubSignal{
		{Strategy: "a", Prob: 0.70, Weight: 1.0},
		{Strategy: "b", Prob: 0.70, Weight: 1.0},
	})

	sig, ok := s.Analyze(opp)
	require.True(t, ok)
	assert.InDelta(t, 0.80, sig.Confidence, 1e-12, "confidence never exceeds 0.80")
}

func TestEnsembleDeclines(t *testing.T) {
	s := NewEnsemble()

	tests := []struct {
		name string
		opp  types.Opportunity
	}{
		{
			name: "single-sub-signal",
			opp: ensembleOpp(0.40, []types.SubSignal{
				{Strategy: "a", Prob: 0.70, Weight: 0.5},
			}),
		},
		{
			name: "no-sub-signals",
			opp:  ensembleOpp(0.40, nil),
		},
		{
			name: "zero-total-weight",
			opp: ensembleOpp(0.40, []types.SubSignal{
				{Strategy: "a", Prob: 0.70, Weight: 0},
				{Strategy: "b", Prob: 0.60, Weight: 0},
			}),
		},
		{
			name: "edge-below-threshold",
			opp: ensembleOpp(0.64, []types.SubSignal{
				{Strategy: "a", Prob: 0.60, Weight: 0.5},
				{Strategy: "b", Prob: 0.70, Weight: 0.5},
			}),
		},
		{
			name: "unresolvable-token",
			opp: types.Opportunity{
				MarketPrice: 0.40,
				Enrichment: types.Enrichment{SubSignals: []types.SubSignal{
					{Strategy: "a", Prob: 0.60, Weight: 0.5},
					{Strategy: "b", Prob: 0.70, Weight: 0.5},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Analyze(tt.opp)
			assert.False(t, ok)
		})
	}
}

func TestEnsembleSellsOverpricedMarket(t *testing.T) {
	s := NewEnsemble()

	opp := ensembleOpp(0.80, []types.SubSignal{
		{Strategy: "a", Prob: 0.60, Weight: 0.5},
		{Strategy: "b", Prob: 0.70, Weight: 0.5},
	})

	sig, ok := s.Analyze(opp)
	require.True(t, ok)
	assert.Equal(t, types.SideSell, sig.Side)
}
