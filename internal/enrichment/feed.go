package enrichment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

// DefaultFeedURL is the production Polymarket market-channel endpoint.
const DefaultFeedURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"

const (
	defaultDialTimeout  = 10 * time.Second
	defaultPingInterval = 10 * time.Second
)

// FeedConfig holds book feed configuration.
type FeedConfig struct {
	URL          string
	DialTimeout  time.Duration
	PingInterval time.Duration
	Backoff      BackoffConfig
	Logger       *zap.Logger
}

// BookFeed maintains a WebSocket subscription to the market channel and
// tracks aggregate book depth per token. It implements Provider: applied to
// an opportunity, it fills the bid and ask depth fields.
type BookFeed struct {
	url     string
	config  FeedConfig
	logger  *zap.Logger
	backoff *backoff
	ledger  *depthLedger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.RWMutex
	conn       *websocket.Conn
	subscribed map[string]bool
	connected  atomic.Bool
}

// NewBookFeed creates a book feed. Zero-valued timing knobs fall back to
// production defaults so a minimal config cannot produce a zero ticker or a
// hot reconnect loop.
func NewBookFeed(cfg FeedConfig) *BookFeed {
	if cfg.URL == "" {
		cfg.URL = DefaultFeedURL
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	cfg.Backoff = cfg.Backoff.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &BookFeed{
		url:        cfg.URL,
		config:     cfg,
		logger:     cfg.Logger,
		backoff:    newBackoff(cfg.Backoff, cfg.Logger),
		ledger:     newDepthLedger(),
		ctx:        ctx,
		cancel:     cancel,
		subscribed: make(map[string]bool),
	}
}

// Start connects and begins consuming book messages. A failed initial dial
// is returned to the caller, but the reconnect loop is armed either way;
// the feed keeps dialing in the background and queued subscriptions are
// replayed once a connection lands.
func (f *BookFeed) Start() error {
	f.logger.Info("book-feed-starting", zap.String("url", f.url))

	dialErr := f.connect(f.ctx)

	f.wg.Add(2)
	go f.pingLoop()
	go f.reconnectLoop()

	if dialErr != nil {
		return fmt.Errorf("initial connection: %w", dialErr)
	}

	f.wg.Add(1)
	go f.readLoop()

	return nil
}

func (f *BookFeed) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: f.config.DialTimeout}

	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	f.connected.Store(true)
	FeedConnected.Set(1)

	f.logger.Info("book-feed-connected")
	return nil
}

// Subscribe adds token subscriptions to the market channel.
func (f *BookFeed) Subscribe(tokenIDs []string) error {
	if len(tokenIDs) == 0 {
		return nil
	}

	f.mu.Lock()
	newTokens := make([]string, 0, len(tokenIDs))
	for _, tokenID := range tokenIDs {
		if !f.subscribed[tokenID] {
			newTokens = append(newTokens, tokenID)
			f.subscribed[tokenID] = true
		}
	}
	if len(newTokens) == 0 {
		f.mu.Unlock()
		return nil
	}

	// The first subscription opens the market channel; later ones add to
	// it with an explicit operation.
	var msg map[string]interface{}
	if len(f.subscribed) == len(newTokens) {
		msg = map[string]interface{}{"assets_ids": newTokens, "type": "market"}
	} else {
		msg = map[string]interface{}{"assets_ids": newTokens, "operation": "subscribe"}
	}
	conn := f.conn
	f.mu.Unlock()

	// Without a live connection the tokens stay queued; resubscribeAll
	// replays the whole set after the next successful dial.
	if conn == nil || !f.connected.Load() {
		f.logger.Debug("subscription-queued", zap.Int("token-count", len(newTokens)))
		return nil
	}

	if err := conn.WriteJSON(msg); err != nil {
		// Tokens remain marked so the reconnect path resubscribes them.
		return fmt.Errorf("write subscribe message: %w", err)
	}

	f.logger.Info("subscribed-to-tokens", zap.Int("new-count", len(newTokens)))
	return nil
}

func (f *BookFeed) readLoop() {
	defer f.wg.Done()

	for {
		select {
		case <-f.ctx.Done():
			return
		default:
		}

		f.mu.RLock()
		conn := f.conn
		f.mu.RUnlock()

		if conn == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			f.logger.Warn("read-error", zap.Error(err))
			f.connected.Store(false)
			FeedConnected.Set(0)
			return
		}

		// The channel sends arrays of messages; anything else is a
		// heartbeat or control frame.
		var msgs []BookMessage
		if err := json.Unmarshal(message, &msgs); err != nil {
			f.logger.Debug("non-book-message", zap.Int("bytes", len(message)))
			continue
		}

		for i := range msgs {
			msg := &msgs[i]
			FeedMessagesTotal.WithLabelValues(msg.EventType).Inc()
			if msg.EventType == "book" {
				f.ledger.applyBook(msg)
			}
		}
	}
}

func (f *BookFeed) pingLoop() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			if !f.connected.Load() {
				continue
			}
			f.mu.RLock()
			conn := f.conn
			f.mu.RUnlock()
			if conn == nil {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second)); err != nil {
				f.logger.Warn("ping-error", zap.Error(err))
			}
		}
	}
}

func (f *BookFeed) reconnectLoop() {
	defer f.wg.Done()

	for {
		select {
		case <-f.ctx.Done():
			return
		default:
		}

		if f.connected.Load() {
			time.Sleep(time.Second)
			continue
		}

		f.logger.Warn("connection-lost-initiating-reconnect")

		if err := f.backoff.retry(f.ctx, f.connect); err != nil {
			if err == context.Canceled {
				return
			}
			f.logger.Error("reconnection-failed", zap.Error(err))
			continue
		}

		if err := f.resubscribeAll(); err != nil {
			f.logger.Error("resubscribe-failed", zap.Error(err))
			f.connected.Store(false)
			continue
		}

		f.wg.Add(1)
		go f.readLoop()
	}
}

func (f *BookFeed) resubscribeAll() error {
	f.mu.RLock()
	tokenIDs := make([]string, 0, len(f.subscribed))
	for tokenID := range f.subscribed {
		tokenIDs = append(tokenIDs, tokenID)
	}
	conn := f.conn
	f.mu.RUnlock()

	if len(tokenIDs) == 0 {
		return nil
	}

	msg := map[string]interface{}{"assets_ids": tokenIDs, "type": "market"}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write resubscribe message: %w", err)
	}

	f.logger.Info("resubscribed-to-all-tokens", zap.Int("count", len(tokenIDs)))
	return nil
}

// Depth returns the latest aggregate depth for a token.
func (f *BookFeed) Depth(tokenID string) (Depth, bool) {
	return f.ledger.get(tokenID)
}

// Name implements Provider.
func (f *BookFeed) Name() string { return "book_depth" }

// Enrich fills bid and ask depth from the first of the opportunity's
// tokens with a known book. Tokens without book data leave the fields
// unset.
func (f *BookFeed) Enrich(_ context.Context, opp *types.Opportunity) error {
	for i := range opp.Tokens {
		if d, ok := f.ledger.get(opp.Tokens[i].TokenID); ok {
			bid, ask := d.Bid, d.Ask
			opp.Enrichment.BidDepth = &bid
			opp.Enrichment.AskDepth = &ask
			return nil
		}
	}
	return nil
}

// Close shuts the feed down and waits for its goroutines.
func (f *BookFeed) Close() error {
	f.logger.Info("book-feed-closing")

	f.cancel()

	f.mu.RLock()
	if f.conn != nil {
		f.conn.Close()
	}
	f.mu.RUnlock()

	f.wg.Wait()
	FeedConnected.Set(0)

	f.logger.Info("book-feed-closed")
	return nil
}
