package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/persistence"
	"github.com/talgya/pawnshop/internal/shop"
)

type fixedSnapshot engine.Snapshot

func (f fixedSnapshot) Snapshot() engine.Snapshot { return engine.Snapshot(f) }

var lamp = catalog.Item{ID: "lamp", Name: "Brass Lamp", BaseValue: 100, Condition: catalog.ConditionGood}

func testSnapshot() engine.Snapshot {
	l := ledger.New()
	l.RecordArrival(1, "c1", "Alice", ledger.Arrival{Personality: "shrewd", SellItem: "Brass Lamp"})
	l.RecordTalked(1, "c1", "Alice")
	l.RecordDeal(1, "c1", "Alice", ledger.Deal{Kind: ledger.DealBuy, ItemID: "lamp", Item: "Brass Lamp", Price: 60})
	l.RecordDayEnd(1, 9940, 1)
	l.RecordArrival(2, "c2", "Bob", ledger.Arrival{Personality: "touchy", SellItem: "Brass Lamp"})

	return engine.Snapshot{
		Tick: 9, Day: 2, MaxDays: 7, Money: 9940, StartingMoney: 10000,
		Inventory: []shop.InventoryItem{{Item: lamp, PurchasePrice: 60, PurchaseDay: 1, FromCustomer: "Alice"}},
		Trades:    []shop.Trade{{ID: "t1", Day: 1, Kind: shop.TradeBuy, Item: lamp, Price: 60, CustomerID: "c1", CustomerName: "Alice"}},
		Customers: []engine.CustomerSummary{{ID: "c2", Name: "Bob", Personality: customers.PersonalityTouchy, SellItem: lamp}},
		Conversations: []shop.Conversation{
			{ID: "conv_c1", CustomerID: "c1", Day: 1, Outcome: shop.OutcomeTradeMade},
		},
		Ledger: l.Entries(),
	}
}

func get(t *testing.T, h http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestStatus(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()

	var status map[string]any
	rec := get(t, h, "/api/v1/status", &status)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.EqualValues(t, 2, status["day"])
	assert.EqualValues(t, 9940, status["money"])
	assert.EqualValues(t, -60, status["profit"])
	assert.EqualValues(t, 1, status["customers_left"])
	active, ok := status["active_customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bob", active["name"])
}

func TestTradesAndInventory(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()

	var trades []shop.Trade
	get(t, h, "/api/v1/trades", &trades)
	require.Len(t, trades, 1)
	assert.Equal(t, 60, trades[0].Price)

	var inv []shop.InventoryItem
	get(t, h, "/api/v1/inventory", &inv)
	require.Len(t, inv, 1)
	assert.Equal(t, "Alice", inv[0].FromCustomer)
}

func TestLedgerFilters(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()

	var all []map[string]any
	get(t, h, "/api/v1/ledger", &all)
	assert.Len(t, all, 5)

	var day1 []map[string]any
	get(t, h, "/api/v1/ledger?day=1", &day1)
	require.Len(t, day1, 4)
	assert.Equal(t, "day_ended", day1[3]["kind"])

	var tail []map[string]any
	get(t, h, "/api/v1/ledger?limit=2", &tail)
	require.Len(t, tail, 2)
	assert.Equal(t, "arrived", tail[1]["kind"])

	var none []map[string]any
	get(t, h, "/api/v1/ledger?day=6", &none)
	assert.Empty(t, none)

	rec := get(t, h, "/api/v1/ledger?day=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()

	var final ledger.FinalStats
	get(t, h, "/api/v1/stats", &final)
	assert.Equal(t, 2, final.TotalCustomers)
	assert.Equal(t, 1, final.PurchaseCount)
	assert.Equal(t, 60, final.Spent)
	assert.Equal(t, 2, final.DaysPlayed)

	var daily ledger.DailyStats
	get(t, h, "/api/v1/stats/day/1", &daily)
	assert.Equal(t, 1, daily.Day)
	assert.Len(t, daily.Purchases, 1)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/stats/day/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/stats/day/0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/stats/day/abc", nil).Code)
}

func TestConversationsByDay(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()

	var convs []shop.Conversation
	get(t, h, "/api/v1/conversations?day=1", &convs)
	require.Len(t, convs, 1)
	assert.Equal(t, shop.OutcomeTradeMade, convs[0].Outcome)

	convs = nil
	get(t, h, "/api/v1/conversations?day=2", &convs)
	assert.Empty(t, convs)
}

func TestRunsWithoutArchive(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/runs", nil).Code)
}

func TestRunsFromArchive(t *testing.T) {
	db, err := persistence.Open(persistence.DriverSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	st := shop.NewState(10000, catalog.New([]catalog.Item{lamp}), ledger.New())
	now := time.Now()
	require.NoError(t, db.SaveRun(context.Background(), persistence.RunRecord{
		ID: "run-1", StartedAt: now, EndedAt: now, StartingMoney: 10000, FinalMoney: 10000,
	}, st))

	h := (&Server{Game: fixedSnapshot(testSnapshot()), DB: db}).Handler()
	var runs []persistence.RunRecord
	rec := get(t, h, "/api/v1/runs", &runs)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestOnlyGet(t *testing.T) {
	h := (&Server{Game: fixedSnapshot(testSnapshot())}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))
	assert.Positive(t, rl.RetryAfter("1.2.3.4"))
	assert.Zero(t, rl.RetryAfter("9.9.9.9"))
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	h := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
