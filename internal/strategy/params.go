package strategy

import (
	"context"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// Score is the result of a scoring hook: the fair-value estimate, the
// derived direction, the strategy's fixed reliability, and diagnostic
// fields explaining the decision.
type Score struct {
	EstimatedProb float64
	Side          types.Side
	Confidence    float64
	Metadata      map[string]float64
}

// ScoreFunc evaluates one enriched opportunity. Returning false declines.
type ScoreFunc func(opp *types.Opportunity) (Score, bool)

// Params is the static configuration of a threshold strategy. The many
// near-identical single-market modules differ only in these values plus a
// scoring hook, so one engine serves them all.
type Params struct {
	Name         string
	Tier         string
	ID           int
	RequiredData []string

	// Outcome is the token whose price anchors the opportunity and whose
	// id the signal trades. Defaults to "yes".
	Outcome string

	// Scan-stage gates. Zero values disable a gate.
	Keywords       []string // any-match over the market description
	MaxAgeHours    float64  // token age_hours must be present and within
	MaxDaysLeft    float64  // token days_left must be present and within
	MaxPrice       float64  // upper bound on the reference price
	MinCorrelation float64  // token portfolio_correlation floor

	Score ScoreFunc
}

// paramStrategy is the generic engine: a Scan built from the declarative
// gates above and an Analyze that defers to the scoring hook.
type paramStrategy struct {
	p Params
}

// New builds a strategy from a parameter table entry.
func New(p Params) Strategy {
	if p.Outcome == "" {
		p.Outcome = "yes"
	}
	return &paramStrategy{p: p}
}

func (s *paramStrategy) Name() string           { return s.p.Name }
func (s *paramStrategy) Tier() string           { return s.p.Tier }
func (s *paramStrategy) ID() int                { return s.p.ID }
func (s *paramStrategy) RequiredData() []string { return s.p.RequiredData }

func (s *paramStrategy) Scan(markets []types.Market) []types.Opportunity {
	opps := make([]types.Opportunity, 0)
	for i := range markets {
		m := &markets[i]
		if !m.Active {
			continue
		}
		if len(s.p.Keywords) > 0 && !matchesKeyword(m.Description, s.p.Keywords) {
			continue
		}

		var age, daysLeft, corr *float64
		if s.p.MaxAgeHours > 0 {
			age = tokenField(m, func(t *types.Token) *float64 { return t.AgeHours })
			if age == nil || *age > s.p.MaxAgeHours {
				continue
			}
		}
		if s.p.MaxDaysLeft > 0 {
			daysLeft = tokenField(m, func(t *types.Token) *float64 { return t.DaysLeft })
			if daysLeft == nil || *daysLeft > s.p.MaxDaysLeft {
				continue
			}
		}

		price, ok := m.OutcomePrice(s.p.Outcome)
		if !ok {
			continue
		}
		if s.p.MaxPrice > 0 && price > s.p.MaxPrice {
			continue
		}

		if s.p.MinCorrelation > 0 {
			corr = tokenField(m, func(t *types.Token) *float64 { return t.PortfolioCorrelation })
			if corr == nil || *corr < s.p.MinCorrelation {
				continue
			}
		}

		opps = append(opps, types.Opportunity{
			MarketID:    m.ConditionID,
			Question:    m.Question,
			MarketPrice: price,
			Category:    m.Category,
			Tokens:      m.Tokens,
			AgeHours:    age,
			DaysLeft:    daysLeft,
			Correlation: corr,
		})
	}
	OpportunitiesScannedTotal.WithLabelValues(s.p.Name).Add(float64(len(opps)))
	return opps
}

func (s *paramStrategy) Analyze(opp types.Opportunity) (types.Signal, bool) {
	score, ok := s.p.Score(&opp)
	if !ok {
		SignalsDeclinedTotal.WithLabelValues(s.p.Name).Inc()
		return types.Signal{}, false
	}

	tokenID, ok := types.TokenIDForOutcome(opp.Tokens, s.p.Outcome)
	if !ok {
		SignalsDeclinedTotal.WithLabelValues(s.p.Name).Inc()
		return types.Signal{}, false
	}

	SignalsEmittedTotal.WithLabelValues(s.p.Name).Inc()
	return types.Signal{
		MarketID:      opp.MarketID,
		TokenID:       tokenID,
		Side:          score.Side,
		EstimatedProb: score.EstimatedProb,
		MarketPrice:   opp.MarketPrice,
		Confidence:    score.Confidence,
		StrategyName:  s.p.Name,
		Metadata:      score.Metadata,
	}, true
}

func (s *paramStrategy) Execute(ctx context.Context, sig types.Signal, size float64, client OrderClient) (types.Order, bool) {
	return executeSignal(ctx, sig, size, client)
}

// tokenField returns the first non-nil value of an optional token field.
func tokenField(m *types.Market, pick func(*types.Token) *float64) *float64 {
	for i := range m.Tokens {
		if v := pick(&m.Tokens[i]); v != nil {
			return v
		}
	}
	return nil
}
