package app

import (
	"context"
	"sync"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/enrichment"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/internal/scanner"
	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
	"go.uber.org/zap"
)

// subscribingSource wraps the scanner and keeps the book feed subscribed to
// every token in the scanned universe. Tokens seen in a previous cycle are
// not resubscribed.
type subscribingSource struct {
	scanner *scanner.Scanner
	feed    *enrichment.BookFeed
	logger  *zap.Logger

	mu   sync.Mutex
	seen map[string]bool
}

func newSubscribingSource(s *scanner.Scanner, feed *enrichment.BookFeed, logger *zap.Logger) *subscribingSource {
	return &subscribingSource{
		scanner: s,
		feed:    feed,
		logger:  logger,
		seen:    make(map[string]bool),
	}
}

// Scan fetches the filtered market universe and subscribes the book feed to
// any tokens it has not seen before. Subscription failures are logged and do
// not fail the scan; enrichment degrades to missing depth fields.
func (s *subscribingSource) Scan(ctx context.Context) ([]types.Market, error) {
	markets, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var fresh []string
	for i := range markets {
		for j := range markets[i].Tokens {
			tokenID := markets[i].Tokens[j].TokenID
			if tokenID == "" || s.seen[tokenID] {
				continue
			}
			s.seen[tokenID] = true
			fresh = append(fresh, tokenID)
		}
	}
	s.mu.Unlock()

	if len(fresh) > 0 {
		err := s.feed.Subscribe(fresh)
		if err != nil {
			s.logger.Warn("book-feed-subscribe-failed",
				zap.Int("token-count", len(fresh)),
				zap.Error(err))
		} else {
			s.logger.Debug("book-feed-subscribed",
				zap.Int("token-count", len(fresh)))
		}
	}

	return markets, nil
}
