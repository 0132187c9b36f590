// Package shop holds the mutable state of one pawn-shop run together with the
// settlement rules and the per-customer conversation state machine.
package shop

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/ledger"
)

// InventoryItem is an item the shop owns.
type InventoryItem struct {
	Item          catalog.Item `json:"item"`
	PurchasePrice int          `json:"purchase_price"`
	PurchaseDay   int          `json:"purchase_day"`
	FromCustomer  string       `json:"from_customer"`
}

// TradeKind is the shop's side of a trade.
type TradeKind string

const (
	TradeBuy  TradeKind = "buy"
	TradeSell TradeKind = "sell"
)

// Trade is a settled transaction. Profit is set on sells only.
type Trade struct {
	ID           string       `json:"id"`
	Day          int          `json:"day"`
	Kind         TradeKind    `json:"kind"`
	Item         catalog.Item `json:"item"`
	Price        int          `json:"price"`
	CustomerID   string       `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	Profit       *int         `json:"profit,omitempty"`
}

// State is the single mutable aggregate of a run. It is owned by one
// goroutine at a time; nothing in this package locks it.
type State struct {
	Tick          int
	Day           int
	Money         int
	StartingMoney int

	Inventory []InventoryItem
	Trades    []Trade

	Customers     []customers.Customer
	ActiveIndex   int // In [0, len(Customers)]; len means nobody left today
	Conversations []*Conversation

	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger

	now func() time.Time
}

// NewState creates a day-1 shop with the given cash.
func NewState(startingMoney int, cat *catalog.Catalog, l *ledger.Ledger) *State {
	if l == nil {
		l = ledger.New()
	}
	return &State{
		Day:           1,
		Money:         startingMoney,
		StartingMoney: startingMoney,
		Inventory:     []InventoryItem{},
		Trades:        []Trade{},
		Catalog:       cat,
		Ledger:        l,
		now:           time.Now,
	}
}

// SetClock replaces the time source used for message timestamps.
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

// SetRoster installs a new day's customers and logs their arrival.
func (s *State) SetRoster(day int, roster []customers.Customer) {
	s.Day = day
	s.Customers = roster
	s.ActiveIndex = 0
	for _, c := range roster {
		s.Ledger.RecordArrival(day, c.ID, c.Name, ledger.Arrival{
			Personality: string(c.Personality),
			SellItem:    c.SellOffer.Item.Name,
		})
	}
}

// ActiveCustomer returns the customer currently at the counter.
func (s *State) ActiveCustomer() (*customers.Customer, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Customers) {
		return nil, false
	}
	return &s.Customers[s.ActiveIndex], true
}

// Advance calls the next customer. The index never passes len(Customers).
func (s *State) Advance() bool {
	if s.ActiveIndex < len(s.Customers) {
		s.ActiveIndex++
	}
	_, ok := s.ActiveCustomer()
	return ok
}

// CustomersLeft returns how many customers are still waiting, including the active one.
func (s *State) CustomersLeft() int {
	return len(s.Customers) - s.ActiveIndex
}

// Conversation returns the conversation with a customer if one was started.
func (s *State) Conversation(customerID string) (*Conversation, bool) {
	for _, c := range s.Conversations {
		if c.CustomerID == customerID && c.Day == s.Day {
			return c, true
		}
	}
	return nil, false
}

// ConversationFor returns the conversation with a customer, starting it on
// first contact. Starting a conversation logs the talked entry.
func (s *State) ConversationFor(c *customers.Customer) *Conversation {
	if conv, ok := s.Conversation(c.ID); ok {
		return conv
	}
	conv := newConversation(c, s.Day)
	s.Conversations = append(s.Conversations, conv)
	s.Ledger.RecordTalked(s.Day, c.ID, c.Name)
	return conv
}

// InventoryIndexByName finds an owned item by name, ignoring case.
func (s *State) InventoryIndexByName(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, inv := range s.Inventory {
		if strings.EqualFold(inv.Item.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// TotalProfit sums the profit of every sell trade.
func (s *State) TotalProfit() int {
	total := 0
	for _, t := range s.Trades {
		if t.Profit != nil {
			total += *t.Profit
		}
	}
	return total
}

// FormatMoney renders whole dollars with thousands separators.
func FormatMoney(amount int) string {
	if amount < 0 {
		return "-$" + humanize.Comma(int64(-amount))
	}
	return "$" + humanize.Comma(int64(amount))
}
