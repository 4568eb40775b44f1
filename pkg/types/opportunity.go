package types

// SubSignal is one component of an ensemble: another strategy's probability
// estimate together with the weight that strategy has earned.
type SubSignal struct {
	Strategy string  `json:"strategy"`
	Prob     float64 `json:"prob"`
	Weight   float64 `json:"weight"`
}

// PendingSignal is a previously computed trade waiting for favorable
// execution conditions (e.g. low gas).
type PendingSignal struct {
	Side          Side    `json:"side"`
	EstimatedProb float64 `json:"estimated_prob"`
}

// Enrichment is the read-only side channel populated by external feeds
// before analysis. Every field is optional; a nil field means the feed had
// no value for this market, which analysis treats as a decline, never as
// an error.
type Enrichment struct {
	GasGwei              *float64
	PendingSignal        *PendingSignal
	FairEstimate         *float64
	DisputeSuccessProb   *float64
	OtherChainPrice      *float64
	TournamentConsensus  *float64
	EventOutcome         *float64
	BidDepth             *float64
	AskDepth             *float64
	ExpectedClosingPrice *float64
	TrendShort           *float64
	TrendMedium          *float64
	TrendLong            *float64
	SubSignals           []SubSignal
}

// Opportunity is a market provisionally selected by a strategy's filter.
// It is constructed by Scan, consumed once by Analyze, and never mutated
// after enrichment. MarketPrice is the reference price the strategy cares
// about, which is not always the YES price.
type Opportunity struct {
	MarketID    string
	Question    string
	MarketPrice float64
	Category    string

	// Tokens carries the market's token list forward for token-id lookup.
	Tokens []Token

	// Scan-derived context, populated only by the strategy that built the
	// opportunity.
	AgeHours    *float64
	DaysLeft    *float64
	Correlation *float64
	GroupAvg    *float64
	Divergence  *float64
	PeerPrices  []float64

	Enrichment Enrichment
}
