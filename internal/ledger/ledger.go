// Package ledger records the append-only audit trail of a run and derives
// daily and final statistics from it.
package ledger

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind identifies what an entry records.
type Kind string

const (
	KindArrived  Kind = "arrived"
	KindTalked   Kind = "talked"
	KindDeal     Kind = "deal"
	KindLeft     Kind = "left"
	KindDayEnded Kind = "day_ended"
)

// Payload is the closed set of per-kind entry details.
type Payload interface {
	payloadKind() Kind
}

// Arrival details a customer walking in.
type Arrival struct {
	Personality string `json:"personality,omitempty"`
	SellItem    string `json:"sell_item"`
}

// DealKind is the shop's side of a deal.
type DealKind string

const (
	DealBuy  DealKind = "buy"  // Shop bought from the customer
	DealSell DealKind = "sell" // Shop sold to the customer
)

// Deal details a settled trade.
type Deal struct {
	Kind   DealKind `json:"kind"`
	ItemID string   `json:"item_id"`
	Item   string   `json:"item"`
	Price  int      `json:"price"`
	Profit *int     `json:"profit,omitempty"` // Sells only
}

// Departure details a customer leaving.
type Departure struct {
	Reason string `json:"reason,omitempty"`
}

// DayEnd snapshots the shop when a day closes.
type DayEnd struct {
	Money     int `json:"money"`
	Inventory int `json:"inventory"`
}

func (Arrival) payloadKind() Kind   { return KindArrived }
func (Deal) payloadKind() Kind      { return KindDeal }
func (Departure) payloadKind() Kind { return KindLeft }
func (DayEnd) payloadKind() Kind    { return KindDayEnded }

// Entry is one ledger record. Payload is nil for talked entries.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Day          int       `json:"day"`
	Kind         Kind      `json:"kind"`
	CustomerID   string    `json:"customer_id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Payload      Payload   `json:"payload,omitempty"`
}

// Ledger is the append-only event log for one run.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	talked  map[talkKey]bool
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

type talkKey struct {
	day        int
	customerID string
}

// New creates an empty ledger.
func New() *Ledger {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty ledger stamped by the given clock.
func NewWithClock(now func() time.Time) *Ledger {
	return &Ledger{
		talked:  make(map[talkKey]bool),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     now,
	}
}

func (l *Ledger) append(day int, kind Kind, customerID, customerName string, p Payload) Entry {
	ts := l.now()
	e := Entry{
		ID:           ulid.MustNew(ulid.Timestamp(ts), l.entropy).String(),
		Timestamp:    ts,
		Day:          day,
		Kind:         kind,
		CustomerID:   customerID,
		CustomerName: customerName,
		Payload:      p,
	}
	l.entries = append(l.entries, e)
	return e
}

// RecordArrival logs a customer entering the shop.
func (l *Ledger) RecordArrival(day int, customerID, customerName string, a Arrival) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(day, KindArrived, customerID, customerName, a)
}

// RecordTalked logs first contact with a customer. Repeat calls for the same
// customer on the same day are ignored; the return value reports whether an
// entry was written.
func (l *Ledger) RecordTalked(day int, customerID, customerName string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := talkKey{day: day, customerID: customerID}
	if l.talked[key] {
		return false
	}
	l.talked[key] = true
	l.append(day, KindTalked, customerID, customerName, nil)
	return true
}

// RecordDeal logs a settled trade.
func (l *Ledger) RecordDeal(day int, customerID, customerName string, d Deal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(day, KindDeal, customerID, customerName, d)
}

// RecordLeft logs a customer walking out.
func (l *Ledger) RecordLeft(day int, customerID, customerName, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(day, KindLeft, customerID, customerName, Departure{Reason: reason})
}

// RecordDayEnd logs the close of a day.
func (l *Ledger) RecordDayEnd(day, money, inventory int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(day, KindDayEnded, "", "", DayEnd{Money: money, Inventory: inventory})
}

// Entries returns a copy of all entries in insertion order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Day returns the entries recorded for one day.
func (l *Ledger) Day(day int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
