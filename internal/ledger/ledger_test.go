package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func intPtr(v int) *int { return &v }

// sampleLedger builds two days of activity:
// day 1: alice sells to the shop, bob talks then leaves, carol never talks.
// day 2: dave buys alice's item back, erin talks with no outcome.
func sampleLedger() *Ledger {
	l := NewWithClock(fixedClock())

	l.RecordArrival(1, "d1c1", "Alice", Arrival{Personality: "patient", SellItem: "Violin"})
	l.RecordArrival(1, "d1c2", "Bob", Arrival{SellItem: "Drill"})
	l.RecordArrival(1, "d1c3", "Carol", Arrival{SellItem: "Camera"})
	l.RecordTalked(1, "d1c1", "Alice")
	l.RecordDeal(1, "d1c1", "Alice", Deal{Kind: DealBuy, ItemID: "violin", Item: "Violin", Price: 150})
	l.RecordTalked(1, "d1c2", "Bob")
	l.RecordLeft(1, "d1c2", "Bob", "no deal")
	l.RecordDayEnd(1, 9850, 1)

	l.RecordArrival(2, "d2c1", "Dave", Arrival{SellItem: "Lamp"})
	l.RecordArrival(2, "d2c2", "Erin", Arrival{SellItem: "Ring"})
	l.RecordTalked(2, "d2c1", "Dave")
	l.RecordDeal(2, "d2c1", "Dave", Deal{Kind: DealSell, ItemID: "violin", Item: "Violin", Price: 300, Profit: intPtr(150)})
	l.RecordTalked(2, "d2c2", "Erin")
	l.RecordDayEnd(2, 10150, 0)
	return l
}

func TestTalkedIsDeduplicated(t *testing.T) {
	l := New()
	assert.True(t, l.RecordTalked(1, "c1", "Alice"))
	assert.False(t, l.RecordTalked(1, "c1", "Alice"))
	assert.False(t, l.RecordTalked(1, "c1", "Alice"))
	assert.True(t, l.RecordTalked(1, "c2", "Bob"))
	assert.Equal(t, 2, l.Len())
}

func TestEntryIDsAreUniqueAndOrdered(t *testing.T) {
	l := sampleLedger()
	entries := l.Entries()
	require.NotEmpty(t, entries)

	seen := make(map[string]bool)
	for i, e := range entries {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
		if i > 0 {
			assert.Greater(t, e.ID, entries[i-1].ID)
			assert.True(t, e.Timestamp.After(entries[i-1].Timestamp))
		}
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := sampleLedger()
	entries := l.Entries()
	entries[0].CustomerName = "changed"
	assert.Equal(t, "Alice", l.Entries()[0].CustomerName)
}

func TestPayloadKinds(t *testing.T) {
	for _, e := range sampleLedger().Entries() {
		if e.Payload == nil {
			assert.Equal(t, KindTalked, e.Kind)
			continue
		}
		assert.Equal(t, e.Kind, e.Payload.payloadKind())
	}
}

func TestDay(t *testing.T) {
	l := sampleLedger()
	assert.Len(t, l.Day(1), 8)
	assert.Len(t, l.Day(2), 6)
	assert.Empty(t, l.Day(3))
}

func TestDailyStats(t *testing.T) {
	entries := sampleLedger().Entries()

	d1 := Daily(entries, 1)
	assert.Equal(t, 3, d1.Arrived)
	assert.Equal(t, 2, d1.Talked)
	assert.Equal(t, 1, d1.NeverTalked)
	require.Len(t, d1.Purchases, 1)
	assert.Equal(t, "Alice", d1.Purchases[0].CustomerName)
	assert.Equal(t, 150, d1.Purchases[0].Price)
	assert.Empty(t, d1.Sales)
	require.Len(t, d1.Departures, 1)
	assert.Equal(t, "Bob", d1.Departures[0].CustomerName)

	d2 := Daily(entries, 2)
	assert.Equal(t, 2, d2.Arrived)
	assert.Equal(t, 2, d2.Talked)
	assert.Zero(t, d2.NeverTalked)
	require.Len(t, d2.Sales, 1)
	require.NotNil(t, d2.Sales[0].Profit)
	assert.Equal(t, 150, *d2.Sales[0].Profit)

	empty := Daily(entries, 9)
	assert.Zero(t, empty.Arrived)
	assert.Empty(t, empty.Purchases)
}

func TestFinalStats(t *testing.T) {
	fs := Final(sampleLedger().Entries(), 10000, 10150, 2)

	assert.Equal(t, 2, fs.DaysPlayed)
	assert.Equal(t, 5, fs.TotalCustomers)
	assert.Equal(t, 4, fs.Talked)
	assert.Equal(t, 1, fs.NeverTalked)
	assert.Equal(t, 1, fs.CustomersLeft)
	assert.Equal(t, 1, fs.PurchaseCount)
	assert.Equal(t, 1, fs.SaleCount)
	assert.Equal(t, 150, fs.Spent)
	assert.Equal(t, 300, fs.Revenue)
	assert.Equal(t, 150, fs.TotalProfit)
	assert.Equal(t, 150, fs.MoneyDelta)

	classes := make(map[string]InteractionClass)
	for _, in := range fs.Interactions {
		classes[in.CustomerName] = in.Class
	}
	assert.Equal(t, map[string]InteractionClass{
		"Alice": InteractionDealMade,
		"Bob":   InteractionLeftWithoutDeal,
		"Carol": InteractionNeverTalked,
		"Dave":  InteractionDealMade,
		"Erin":  InteractionTalkedNoOutcome,
	}, classes)

	// Interactions follow arrival order.
	require.Len(t, fs.Interactions, 5)
	assert.Equal(t, "Alice", fs.Interactions[0].CustomerName)
	assert.Equal(t, "Erin", fs.Interactions[4].CustomerName)
}

func TestStatsAreIdempotent(t *testing.T) {
	entries := sampleLedger().Entries()

	assert.Equal(t, Final(entries, 10000, 10150, 2), Final(entries, 10000, 10150, 2))
	assert.Equal(t, Daily(entries, 1), Daily(entries, 1))
}

func TestFinalStatsDoNotAliasLedger(t *testing.T) {
	entries := sampleLedger().Entries()
	fs := Final(entries, 10000, 10150, 2)
	*fs.Sales[0].Profit = 999

	again := Final(entries, 10000, 10150, 2)
	assert.Equal(t, 150, *again.Sales[0].Profit)
}
