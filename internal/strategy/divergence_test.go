package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

func yesNoMarket(id, question, category string, yesPrice float64) types.Market {
	return types.Market{
		ConditionID: id,
		Question:    question,
		Category:    category,
		Active:      true,
		Tokens: []types.Token{
			{TokenID: id + "-yes", Outcome: "Yes", Price: yesPrice},
			{TokenID: id + "-no", Outcome: "No", Price: 1 - yesPrice},
		},
	}
}

func TestCorrelationDivergenceScan(t *testing.T) {
	s := NewCorrelationDivergence()

	markets := []types.Market{
		yesNoMarket("m1", "q1", "crypto", 0.30),
		yesNoMarket("m2", "q2", "crypto", 0.70),
		yesNoMarket("m3", "q3", "politics", 0.50),
	}

	opps := s.Scan(markets)

	// crypto mean = 0.50; both members diverge by 0.20 >= 0.10.
	// The politics singleton group is never flagged.
	require.Len(t, opps, 2)

	assert.Equal(t, "m1", opps[0].MarketID)
	assert.InDelta(t, 0.30, opps[0].MarketPrice, 1e-12)
	require.NotNil(t, opps[0].GroupAvg)
	assert.InDelta(t, 0.50, *opps[0].GroupAvg, 1e-12)
	require.NotNil(t, opps[0].Divergence)
	assert.InDelta(t, 0.20, *opps[0].Divergence, 1e-12)

	assert.Equal(t, "m2", opps[1].MarketID)
}

func TestCorrelationDivergenceScanSkipsInactiveAndUncategorized(t *testing.T) {
	s := NewCorrelationDivergence()

	inactive := yesNoMarket("m1", "q1", "crypto", 0.10)
	inactive.Active = false
	uncategorized := yesNoMarket("m2", "q2", "", 0.90)

	opps := s.Scan([]types.Market{inactive, uncategorized, yesNoMarket("m3", "q3", "crypto", 0.90)})
	assert.Empty(t, opps)
}

func TestCorrelationDivergenceThresholdBoundary(t *testing.T) {
	s := NewCorrelationDivergence()

	// Mean = 0.50, deviations exactly 0.10: the >= comparison flags both.
	markets := []types.Market{
		yesNoMarket("m1", "q1", "crypto", 0.40),
		yesNoMarket("m2", "q2", "crypto", 0.60),
	}
	assert.Len(t, s.Scan(markets), 2)

	// Deviations of 0.09 are below the threshold.
	markets = []types.Market{
		yesNoMarket("m1", "q1", "crypto", 0.41),
		yesNoMarket("m2", "q2", "crypto", 0.59),
	}
	assert.Empty(t, s.Scan(markets))
}

func TestCorrelationDivergenceScanRequiresResolvablePrices(t *testing.T) {
	s := NewCorrelationDivergence()

	noYes := types.Market{
		ConditionID: "m1",
		Category:    "crypto",
		Active:      true,
		Tokens:      []types.Token{{TokenID: "m1-no", Outcome: "No", Price: 0.5}},
	}

	// Only one resolvable price in the group: below the minimum, no output.
	opps := s.Scan([]types.Market{noYes, yesNoMarket("m2", "q2", "crypto", 0.30)})
	assert.Empty(t, opps)
}

func TestCorrelationDivergenceAnalyze(t *testing.T) {
	s := NewCorrelationDivergence()

	avg := 0.50
	div := 0.20

	tests := []struct {
		name     string
		price    float64
		wantSide types.Side
	}{
		{name: "below-mean-buys", price: 0.30, wantSide: types.SideBuy},
		{name: "above-mean-sells", price: 0.70, wantSide: types.SideSell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := types.Opportunity{
				MarketID:    "m1",
				MarketPrice: tt.price,
				Tokens:      []types.Token{{TokenID: "tok-yes", Outcome: "Yes"}},
				GroupAvg:    &avg,
				Divergence:  &div,
			}

			sig, ok := s.Analyze(opp)
			require.True(t, ok)
			assert.Equal(t, tt.wantSide, sig.Side)
			assert.Equal(t, "tok-yes", sig.TokenID)
			assert.InDelta(t, avg, sig.EstimatedProb, 1e-12)
			assert.InDelta(t, 0.45, sig.Confidence, 1e-12)
			assert.Equal(t, "correlation_divergence", sig.StrategyName)
		})
	}
}

func TestCorrelationDivergenceAnalyzeDeclines(t *testing.T) {
	s := NewCorrelationDivergence()
	avg := 0.50
	div := 0.20
	small := 0.05

	tests := []struct {
		name string
		opp  types.Opportunity
	}{
		{
			name: "missing-group-average",
			opp: types.Opportunity{
				MarketPrice: 0.30,
				Tokens:      []types.Token{{TokenID: "tok-yes", Outcome: "Yes"}},
				Divergence:  &div,
			},
		},
		{
			name: "divergence-below-threshold",
			opp: types.Opportunity{
				MarketPrice: 0.45,
				Tokens:      []types.Token{{TokenID: "tok-yes", Outcome: "Yes"}},
				GroupAvg:    &avg,
				Divergence:  &small,
			},
		},
		{
			name: "unresolvable-token",
			opp: types.Opportunity{
				MarketPrice: 0.30,
				Tokens:      []types.Token{{TokenID: "tok-no", Outcome: "No"}},
				GroupAvg:    &avg,
				Divergence:  &div,
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
