package types

import "strings"

// Token represents a single outcome token within a market.
// The optional fields are populated by upstream enrichment feeds and are
// nil when the feed has nothing to say about this token.
type Token struct {
	TokenID              string   `json:"token_id"`
	Outcome              string   `json:"outcome"`
	Price                float64  `json:"price"`
	AgeHours             *float64 `json:"age_hours,omitempty"`
	DaysLeft             *float64 `json:"days_left,omitempty"`
	PortfolioCorrelation *float64 `json:"portfolio_correlation,omitempty"`
}

// Market is a snapshot of a prediction market as returned by the Gamma API.
type Market struct {
	ConditionID string  `json:"condition_id"`
	Question    string  `json:"question"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Active      bool    `json:"active"`
	Tokens      []Token `json:"tokens"`
	Volume      float64 `json:"volume"`
	Liquidity   float64 `json:"liquidity"`
	EndDateISO  string  `json:"end_date_iso"`
}

// OutcomeToken returns the first token whose outcome matches the given name.
// Matching is case-insensitive. The second return value is false when no
// token carries that outcome; a missing outcome is a normal state, not an
// error.
func (m *Market) OutcomeToken(outcome string) (Token, bool) {
	for i := range m.Tokens {
		if strings.EqualFold(m.Tokens[i].Outcome, outcome) {
			return m.Tokens[i], true
		}
	}
	return Token{}, false
}

// OutcomePrice returns the price of the token for the given outcome.
func (m *Market) OutcomePrice(outcome string) (float64, bool) {
	t, ok := m.OutcomeToken(outcome)
	if !ok {
		return 0, false
	}
	return t.Price, true
}

// TokenIDForOutcome performs a case-insensitive lookup over a carried token
// list and returns the first match's identifier. Shared by every strategy:
// a Signal is never produced without a resolvable token id.
func TokenIDForOutcome(tokens []Token, outcome string) (string, bool) {
	for i := range tokens {
		if strings.EqualFold(tokens[i].Outcome, outcome) && tokens[i].TokenID != "" {
			return tokens[i].TokenID, true
		}
	}
	return "", false
}
