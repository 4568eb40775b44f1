package enrichment

import (
	"strconv"
	"sync"
	"time"
)

// BookMessage is a market-channel message from the Polymarket WebSocket.
type BookMessage struct {
	EventType string       `json:"event_type"` // "book", "price_change", "last_trade_price"
	AssetID   string       `json:"asset_id"`
	Market    string       `json:"market"`
	Hash      string       `json:"hash,omitempty"`
	Bids      []PriceLevel `json:"bids,omitempty"`
	Asks      []PriceLevel `json:"asks,omitempty"`
}

// PriceLevel is a single price level. The wire format uses strings.
type PriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// Depth is the aggregate size on each side of a token's book.
type Depth struct {
	Bid       float64
	Ask       float64
	UpdatedAt time.Time
}

// depthLedger keeps the latest aggregate depth per token.
type depthLedger struct {
	mu    sync.RWMutex
	depth map[string]Depth
}

func newDepthLedger() *depthLedger {
	return &depthLedger{depth: make(map[string]Depth)}
}

// applyBook replaces a token's depth from a full book snapshot.
func (l *depthLedger) applyBook(msg *BookMessage) {
	d := Depth{
		Bid:       sumLevels(msg.Bids),
		Ask:       sumLevels(msg.Asks),
		UpdatedAt: time.Now(),
	}

	l.mu.Lock()
	l.depth[msg.AssetID] = d
	l.mu.Unlock()
}

func (l *depthLedger) get(tokenID string) (Depth, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.depth[tokenID]
	return d, ok
}

func sumLevels(levels []PriceLevel) float64 {
	total := 0.0
	for i := range levels {
		size, err := strconv.ParseFloat(levels[i].Size, 64)
		if err != nil {
			continue
		}
		total += size
	}
	return total
}
