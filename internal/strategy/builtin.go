package strategy

import "github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"

// The single-market modules below are threshold comparisons over one
// externally supplied field. Each is an instance of the generic engine in
// params.go; only the gates, thresholds and confidence differ.

// NewGasOptimization trades a pending signal only while network gas is
// cheap enough for the trade to be worthwhile.
func NewGasOptimization() Strategy {
	const gasThresholdGwei = 50.0
	return New(Params{
		Name: "gas_optimization",
		Tier: "C",
		ID:   89,
		Score: func(opp *types.Opportunity) (Score, bool) {
			gas := opp.Enrichment.GasGwei
			if gas == nil || *gas > gasThresholdGwei {
				return Score{}, false
			}
			pending := opp.Enrichment.PendingSignal
			if pending == nil {
				return Score{}, false
			}
			return Score{
				EstimatedProb: pending.EstimatedProb,
				Side:          pending.Side,
				Confidence:    0.50,
				Metadata:      map[string]float64{"gas_gwei": *gas},
			}, true
		},
	})
}

// NewMarketCreation looks for early mispricing in markets less than a day
// old, scored against an externally supplied fair estimate.
func NewMarketCreation() Strategy {
	const (
		maxAgeHours = 24.0
		minEdge     = 0.05
	)
	return New(Params{
		Name:        "market_creation",
		Tier:        "C",
		ID:          90,
		MaxAgeHours: maxAgeHours,
		Score: func(opp *types.Opportunity) (Score, bool) {
			fair := opp.Enrichment.FairEstimate
			if fair == nil {
				return Score{}, false
			}
			edge := *fair - opp.MarketPrice
			if abs(edge) < minEdge {
				return Score{}, false
			}
			meta := map[string]float64{"edge": edge}
			if opp.AgeHours != nil {
				meta["age_hours"] = *opp.AgeHours
			}
			return Score{
				EstimatedProb: *fair,
				Side:          types.SideForEdge(*fair, opp.MarketPrice),
				Confidence:    0.40,
				Metadata:      meta,
			}, true
		},
	})
}

// NewDisputeMonitoring trades markets whose resolution is under dispute:
// a likely-successful dispute implies the current price is inverted.
func NewDisputeMonitoring() Strategy {
	const minEdge = 0.05
	return New(Params{
		Name:     "dispute_monitoring",
		Tier:     "C",
		ID:       91,
		Keywords: []string{"dispute", "uma", "challenged", "oracle"},
		Score: func(opp *types.Opportunity) (Score, bool) {
			successProb := opp.Enrichment.DisputeSuccessProb
			if successProb == nil {
				return Score{}, false
			}
			estimated := opp.MarketPrice
			if *successProb > 0.5 {
				estimated = 1.0 - opp.MarketPrice
			}
			if abs(estimated-opp.MarketPrice) < minEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: estimated,
				Side:          types.SideForEdge(estimated, opp.MarketPrice),
				Confidence:    0.45,
				Metadata:      map[string]float64{"dispute_success_prob": *successProb},
			}, true
		},
	})
}

// NewCrossChainArb compares the local price against the same contract on
// another chain.
func NewCrossChainArb() Strategy {
	const minEdge = 0.03
	return New(Params{
		Name:     "cross_chain_arb",
		Tier:     "C",
		ID:       92,
		Keywords: []string{"gnosis", "arbitrum", "optimism", "mainnet"},
		Score: func(opp *types.Opportunity) (Score, bool) {
			other := opp.Enrichment.OtherChainPrice
			if other == nil {
				return Score{}, false
			}
			edge := *other - opp.MarketPrice
			if abs(edge) < minEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: *other,
				Side:          types.SideForEdge(*other, opp.MarketPrice),
				Confidence:    0.50,
				Metadata:      map[string]float64{"other_chain_price": *other, "edge": edge},
			}, true
		},
	})
}

// NewTournamentSignal follows forecasting-tournament consensus as the fair
// probability for markets those tournaments track.
func NewTournamentSignal() Strategy {
	const minEdge = 0.05
	return New(Params{
		Name:     "tournament_signal",
		Tier:     "C",
		ID:       93,
		Keywords: []string{"metaculus", "manifold"},
		Score: func(opp *types.Opportunity) (Score, bool) {
			consensus := opp.Enrichment.TournamentConsensus
			if consensus == nil {
				return Score{}, false
			}
			edge := *consensus - opp.MarketPrice
			if abs(edge) < minEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: *consensus,
				Side:          types.SideForEdge(*consensus, opp.MarketPrice),
				Confidence:    0.55,
				Metadata:      map[string]float64{"tournament_consensus": *consensus, "edge": edge},
			}, true
		},
	})
}

// NewMarketDepth trades toward the heavier side of the book when depth is
// imbalanced beyond 30%, shifting the probability by up to 10 cents.
func NewMarketDepth() Strategy {
	const (
		imbalanceThreshold = 0.30
		probShiftScale     = 0.10
	)
	return New(Params{
		Name: "market_depth",
		Tier: "C",
		ID:   95,
		Score: func(opp *types.Opportunity) (Score, bool) {
			bid, ask := opp.Enrichment.BidDepth, opp.Enrichment.AskDepth
			if bid == nil || ask == nil {
				return Score{}, false
			}
			total := *bid + *ask
			if total == 0 {
				return Score{}, false
			}
			imbalance := (*bid - *ask) / total
			if abs(imbalance) < imbalanceThreshold {
				return Score{}, false
			}
			estimated := clampProb(opp.MarketPrice + imbalance*probShiftScale)
			side := types.SideSell
			if imbalance > 0 {
				side = types.SideBuy
			}
			return Score{
				EstimatedProb: estimated,
				Side:          side,
				Confidence:    0.40,
				Metadata:      map[string]float64{"imbalance": imbalance, "bid_depth": *bid, "ask_depth": *ask},
			}, true
		},
	})
}

// NewClosingLineValue buys entries that beat the expected closing price of
// markets within days of resolution. The edge is asymmetric: only a
// favorable closing line is actionable, so the strategy only ever buys.
func NewClosingLineValue() Strategy {
	const (
		maxDaysToResolution = 3.0
		minCLVEdge          = 0.03
	)
	return New(Params{
		Name:        "closing_line_value",
		Tier:        "C",
		ID:          96,
		MaxDaysLeft: maxDaysToResolution,
		Score: func(opp *types.Opportunity) (Score, bool) {
			expected := opp.Enrichment.ExpectedClosingPrice
			if expected == nil {
				return Score{}, false
			}
			clv := *expected - opp.MarketPrice
			if clv < minCLVEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: *expected,
				Side:          types.SideBuy,
				Confidence:    0.55,
				Metadata:      map[string]float64{"clv": clv, "expected_closing": *expected},
			}, true
		},
	})
}

// NewSmartContractEvent reacts to on-chain resolution events: the event
// outcome (1 for YES, 0 for NO) becomes the fair probability.
func NewSmartContractEvent() Strategy {
	const minEdge = 0.05
	return New(Params{
		Name:     "smart_contract_event",
		Tier:     "C",
		ID:       97,
		Keywords: []string{"on-chain", "onchain", "smart contract", "oracle", "chainlink"},
		Score: func(opp *types.Opportunity) (Score, bool) {
			outcome := opp.Enrichment.EventOutcome
			if outcome == nil {
				return Score{}, false
			}
			if abs(*outcome-opp.MarketPrice) < minEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: *outcome,
				Side:          types.SideForEdge(*outcome, opp.MarketPrice),
				Confidence:    0.70,
				Metadata:      map[string]float64{"event_outcome": *outcome},
			}, true
		},
	})
}

// NewMultiTimeframe requires short, medium and long trends to agree in
// sign beyond a minimum strength before shifting the probability by the
// average trend.
func NewMultiTimeframe() Strategy {
	const minTrendStrength = 0.03
	return New(Params{
		Name: "multi_timeframe",
		Tier: "C",
		ID:   98,
		Score: func(opp *types.Opportunity) (Score, bool) {
			short, medium, long := opp.Enrichment.TrendShort, opp.Enrichment.TrendMedium, opp.Enrichment.TrendLong
			if short == nil || medium == nil || long == nil {
				return Score{}, false
			}
			allPositive := *short > minTrendStrength && *medium > minTrendStrength && *long > minTrendStrength
			allNegative := *short < -minTrendStrength && *medium < -minTrendStrength && *long < -minTrendStrength
			if !allPositive && !allNegative {
				return Score{}, false
			}
			avgTrend := (*short + *medium + *long) / 3.0
			side := types.SideSell
			if avgTrend > 0 {
				side = types.SideBuy
			}
			return Score{
				EstimatedProb: clampProb(opp.MarketPrice + avgTrend),
				Side:          side,
				Confidence:    0.50,
				Metadata:      map[string]float64{"trend_short": *short, "trend_medium": *medium, "trend_long": *long},
			}, true
		},
	})
}

// NewPortfolioInsurance buys cheap NO tokens in markets correlated with
// existing portfolio exposure, as a hedge. The hedge is always a buy of
// the NO side; its fair value grows with correlation strength.
func NewPortfolioInsurance() Strategy {
	const (
		correlationThreshold = 0.50
		maxNoPrice           = 0.40
		hedgeValueScale      = 0.10
		minEdge              = 0.03
	)
	return New(Params{
		Name:           "portfolio_insurance",
		Tier:           "C",
		ID:             99,
		Outcome:        "no",
		MaxPrice:       maxNoPrice,
		MinCorrelation: correlationThreshold,
		Score: func(opp *types.Opportunity) (Score, bool) {
			if opp.Correlation == nil || *opp.Correlation < correlationThreshold {
				return Score{}, false
			}
			fairValue := opp.MarketPrice + *opp.Correlation*hedgeValueScale
			if fairValue > 0.99 {
				fairValue = 0.99
			}
			if fairValue-opp.MarketPrice < minEdge {
				return Score{}, false
			}
			return Score{
				EstimatedProb: fairValue,
				Side:          types.SideBuy,
				Confidence:    0.45,
				Metadata:      map[string]float64{"correlation": *opp.Correlation, "hedge_value": fairValue},
			}, true
		},
	})
}
