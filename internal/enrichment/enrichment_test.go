package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

func TestRegistryAppliesInOrder(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	var order []string
	r.Register(ProviderFunc{
		ProviderName: "first",
		Fn: func(_ context.Context, opp *types.Opportunity) error {
			order = append(order, "first")
			v := 30.0
			opp.Enrichment.GasGwei = &v
			return nil
		},
	})
	r.Register(ProviderFunc{
		ProviderName: "second",
		Fn: func(_ context.Context, opp *types.Opportunity) error {
			order = append(order, "second")
			v := 0.60
			opp.Enrichment.FairEstimate = &v
			return nil
		},
	})

	opp := types.Opportunity{MarketID: "m1"}
	r.Apply(context.Background(), &opp)

	assert.Equal(t, []string{"first", "second"}, order)
	require.NotNil(t, opp.Enrichment.GasGwei)
	require.NotNil(t, opp.Enrichment.FairEstimate)
	assert.InDelta(t, 30.0, *opp.Enrichment.GasGwei, 1e-12)
}

func TestRegistrySkipsFailingProvider(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	r.Register(ProviderFunc{
		ProviderName: "failing",
		Fn: func(_ context.Context, _ *types.Opportunity) error {
			return errors.New("upstream unavailable")
		},
	})
	r.Register(ProviderFunc{
		ProviderName: "working",
		Fn: func(_ context.Context, opp *types.Opportunity) error {
			v := 0.55
			opp.Enrichment.TournamentConsensus = &v
			return nil
		},
	})

	opp := types.Opportunity{MarketID: "m1"}
	r.Apply(context.Background(), &opp)

	assert.Nil(t, opp.Enrichment.GasGwei)
	require.NotNil(t, opp.Enrichment.TournamentConsensus)
	assert.InDelta(t, 0.55, *opp.Enrichment.TournamentConsensus, 1e-12)
}

func TestDepthLedgerApplyBook(t *testing.T) {
	l := newDepthLedger()

	l.applyBook(&BookMessage{
		EventType: "book",
		AssetID:   "tok1",
		Bids: []PriceLevel{
			{Price: "0.48", Size: "100"},
			{Price: "0.47", Size: "250.5"},
			{Price: "0.46", Size: "not-a-number"}, // skipped
		},
		Asks: []PriceLevel{
			{Price: "0.52", Size: "80"},
		},
	})

	d, ok := l.get("tok1")
	require.True(t, ok)
	assert.InDelta(t, 350.5, d.Bid, 1e-9)
	assert.InDelta(t, 80, d.Ask, 1e-9)

	// A later snapshot replaces, not accumulates.
	l.applyBook(&BookMessage{
		EventType: "book",
		AssetID:   "tok1",
		Bids:      []PriceLevel{{Price: "0.48", Size: "10"}},
	})

	d, ok = l.get("tok1")
	require.True(t, ok)
	assert.InDelta(t, 10, d.Bid, 1e-9)
	assert.Zero(t, d.Ask)

	_, ok = l.get("tok2")
	assert.False(t, ok)
}

func TestBookFeedEnrich(t *testing.T) {
	f := NewBookFeed(FeedConfig{Logger: zap.NewNop()})
	defer f.cancel()

	f.ledger.applyBook(&BookMessage{
		EventType: "book",
		AssetID:   "m1-yes",
		Bids:      []PriceLevel{{Price: "0.48", Size: "800"}},
		Asks:      []PriceLevel{{Price: "0.52", Size: "200"}},
	})

	opp := types.Opportunity{
		MarketID: "m1",
		Tokens: []types.Token{
			{TokenID: "m1-yes", Outcome: "Yes"},
			{TokenID: "m1-no", Outcome: "No"},
		},
	}

	require.NoError(t, f.Enrich(context.Background(), &opp))
	require.NotNil(t, opp.Enrichment.BidDepth)
	require.NotNil(t, opp.Enrichment.AskDepth)
	assert.InDelta(t, 800, *opp.Enrichment.BidDepth, 1e-9)
	assert.InDelta(t, 200, *opp.Enrichment.AskDepth, 1e-9)
}

func TestBookFeedEnrichNoBookLeavesFieldsUnset(t *testing.T) {
	f := NewBookFeed(FeedConfig{Logger: zap.NewNop()})
	defer f.cancel()

	opp := types.Opportunity{
		MarketID: "m1",
		Tokens:   []types.Token{{TokenID: "m1-yes", Outcome: "Yes"}},
	}

	require.NoError(t, f.Enrich(context.Background(), &opp))
	assert.Nil(t, opp.Enrichment.BidDepth)
	assert.Nil(t, opp.Enrichment.AskDepth)
}

func TestBackoffIncrementsAndCaps(t *testing.T) {
	b := newBackoff(BackoffConfig{
		InitialDelay: 100,
		MaxDelay:     400,
		Multiplier:   2.0,
	}, zap.NewNop())

	assert.Equal(t, int64(100), int64(b.next()))
	b.increment()
	assert.Equal(t, int64(200), int64(b.next()))
	b.increment()
	b.increment()
	assert.Equal(t, int64(400), int64(b.next()), "capped at max delay")

	b.reset()
	assert.Equal(t, int64(100), int64(b.next()))
}
