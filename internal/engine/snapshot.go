package engine

import (
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/shop"
)

// Snapshot is a read-only copy of the game taken after a tick. It shares no
// memory with the live state.
type Snapshot struct {
	Tick          int                  `json:"tick"`
	Day           int                  `json:"day"`
	MaxDays       int                  `json:"max_days"`
	Money         int                  `json:"money"`
	StartingMoney int                  `json:"starting_money"`
	Inventory     []shop.InventoryItem `json:"inventory"`
	Trades        []shop.Trade         `json:"trades"`
	Customers     []CustomerSummary    `json:"customers"`
	ActiveIndex   int                  `json:"active_index"`
	Conversations []shop.Conversation  `json:"conversations"`
	Ledger        []ledger.Entry       `json:"-"`
	LastResult    string               `json:"last_result,omitempty"`
	Ended         bool                 `json:"ended"`
	Reason        EndReason            `json:"reason,omitempty"`
}

// Snapshot returns the state as of the last completed tick. Safe to call
// from any goroutine.
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap
}

func (g *Game) publish() {
	st := g.state

	snap := Snapshot{
		Tick:          st.Tick,
		Day:           st.Day,
		MaxDays:       g.cfg.MaxDays,
		Money:         st.Money,
		StartingMoney: st.StartingMoney,
		Inventory:     append(make([]shop.InventoryItem, 0, len(st.Inventory)), st.Inventory...),
		Trades:        copyTrades(st.Trades),
		Customers:     make([]CustomerSummary, 0, len(st.Customers)),
		ActiveIndex:   st.ActiveIndex,
		Conversations: make([]shop.Conversation, 0, len(st.Conversations)),
		Ledger:        st.Ledger.Entries(),
		LastResult:    g.lastResult,
		Ended:         g.ended != ReasonNone,
		Reason:        g.ended,
	}
	for i := range st.Customers {
		snap.Customers = append(snap.Customers, *summarize(st, &st.Customers[i]))
	}
	for _, conv := range st.Conversations {
		snap.Conversations = append(snap.Conversations, copyConversation(conv))
	}

	g.mu.Lock()
	g.snap = snap
	g.mu.Unlock()
}

func copyTrades(trades []shop.Trade) []shop.Trade {
	out := make([]shop.Trade, len(trades))
	for i, t := range trades {
		if t.Profit != nil {
			p := *t.Profit
			t.Profit = &p
		}
		out[i] = t
	}
	return out
}

func copyConversation(c *shop.Conversation) shop.Conversation {
	cp := shop.Conversation{
		ID:               c.ID,
		CustomerID:       c.CustomerID,
		CustomerName:     c.CustomerName,
		Day:              c.Day,
		InitialOffer:     c.InitialOffer,
		InitialInterests: append([]customers.BuyingInterest(nil), c.InitialInterests...),
		Messages:         append([]shop.Message(nil), c.Messages...),
		Outcome:          c.Outcome,
		Departed:         c.Departed,
	}
	return cp
}
