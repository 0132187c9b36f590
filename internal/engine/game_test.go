package engine_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pawnshop/internal/agents"
	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/shop"
)

// lamp is worth exactly 100, so an offer of 90 always clears the seller's
// minimum (at most 70) and an offer of 10 never does (at least 40).
var lamp = catalog.Item{ID: "lamp", Name: "Brass Lamp", Category: catalog.CategoryAntiques,
	BaseValue: 100, Condition: catalog.ConditionExcellent, Description: "polished"}

func newGame(cfg engine.Config, perDay int, owner engine.OwnerOracle, customer shop.CustomerOracle) *engine.Game {
	cat := catalog.New([]catalog.Item{lamp})
	gen := customers.NewGenerator(customers.Config{PerDay: perDay, MinInterests: 1, MaxInterests: 1},
		cat, rand.New(rand.NewSource(1)))
	return engine.NewGame(cfg, cat, gen, owner, customer, rand.New(rand.NewSource(2)))
}

func testConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.MaxTicks = 50
	return cfg
}

func TestNewGameOpensDayOne(t *testing.T) {
	g := newGame(testConfig(), 3, agents.NewScriptedOwner(), agents.NewScriptedCustomer())
	st := g.State()
	assert.Equal(t, 1, st.Day)
	assert.Len(t, st.Customers, 3)
	assert.Zero(t, st.ActiveIndex)
	assert.Equal(t, 3, ledger.Daily(st.Ledger.Entries(), 1).Arrived)

	snap := g.Snapshot()
	assert.Equal(t, 1, snap.Day)
	assert.Len(t, snap.Customers, 3)
	assert.False(t, snap.Ended)
}

func TestOutOfMoneyAtExactlyZero(t *testing.T) {
	cfg := testConfig()
	cfg.StartingMoney = 90
	g := newGame(cfg, 1, agents.NewScriptedOwner(engine.MakeOffer{Price: 90}), agents.NewScriptedCustomer())

	res := g.Run(context.Background())
	assert.Equal(t, string(engine.ReasonOutOfMoney), res.Reason)
	assert.Equal(t, engine.DriverCompleted, res.DriverReason)
	assert.Zero(t, res.FinalMoney)
	assert.Equal(t, -90, res.Profit)
	assert.Equal(t, 1, res.TotalTrades)
	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, 1, res.Stats.PurchaseCount)
}

func TestOutOfMoneyWinsOverMaxDays(t *testing.T) {
	g := newGame(testConfig(), 1, agents.NewScriptedOwner(), agents.NewScriptedCustomer())
	g.State().Money = 0
	g.State().Day = 99

	reason, ended := g.CheckEnd()
	assert.True(t, ended)
	assert.Equal(t, engine.ReasonOutOfMoney, reason)

	g.State().Money = 1
	reason, ended = g.CheckEnd()
	assert.True(t, ended)
	assert.Equal(t, engine.ReasonMaxDaysReached, reason)

	g.State().Day = g.Config().MaxDays
	_, ended = g.CheckEnd()
	assert.False(t, ended)
}

func TestMaxDaysReached(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDays = 2
	g := newGame(cfg, 1, agents.NewScriptedOwner(engine.GoToNextDay{}, engine.GoToNextDay{}), agents.NewScriptedCustomer())

	res := g.Run(context.Background())
	assert.Equal(t, string(engine.ReasonMaxDaysReached), res.Reason)
	assert.Equal(t, 2, res.DaysPlayed)
	assert.Equal(t, 3, res.Ticks)
	assert.Equal(t, 10000, res.FinalMoney)

	entries := g.State().Ledger.Entries()
	var dayEnds, arrivals int
	for _, e := range entries {
		switch e.Kind {
		case ledger.KindDayEnded:
			dayEnds++
		case ledger.KindArrived:
			arrivals++
		}
	}
	assert.Equal(t, 2, dayEnds)
	assert.Equal(t, 2, arrivals, "no roster is generated past the last day")
	assert.Empty(t, g.State().Customers)
	assert.Equal(t, 2, res.Stats.TotalCustomers)
	assert.Equal(t, 2, res.Stats.NeverTalked)

	snap := g.Snapshot()
	assert.True(t, snap.Ended)
	assert.Equal(t, engine.ReasonMaxDaysReached, snap.Reason)
}

func TestNextDayRegeneratesRoster(t *testing.T) {
	owner := agents.NewScriptedOwner(engine.SeeNextCustomer{}, engine.GoToNextDay{})
	g := newGame(testConfig(), 2, owner, agents.NewScriptedCustomer())
	ctx := context.Background()

	require.True(t, g.Tick(ctx, 1))
	assert.Equal(t, 1, g.State().ActiveIndex)
	require.True(t, g.Tick(ctx, 2))
	st := g.State()
	assert.Equal(t, 2, st.Day)
	assert.Zero(t, st.ActiveIndex)
	require.Len(t, st.Customers, 2)
	assert.Equal(t, "day_2_customer_1", st.Customers[0].ID)
}

func TestSeeNextCustomerClamps(t *testing.T) {
	owner := agents.NewScriptedOwner(engine.SeeNextCustomer{}, engine.SeeNextCustomer{}, engine.ViewMoney{})
	g := newGame(testConfig(), 1, owner, agents.NewScriptedCustomer())
	ctx := context.Background()

	g.Tick(ctx, 1)
	g.Tick(ctx, 2)
	assert.Equal(t, 1, g.State().ActiveIndex)
	g.Tick(ctx, 3)

	seen := owner.Seen()
	require.Len(t, seen, 3)
	assert.Nil(t, seen[2].Customer)
	assert.Zero(t, seen[2].CustomersLeftToday)
	assert.Contains(t, seen[2].LastResult, "No more customers")
}

func TestOwnerOfferBelowMinimum(t *testing.T) {
	owner := agents.NewScriptedOwner(engine.MakeOffer{Price: 10}, engine.ViewMoney{})
	g := newGame(testConfig(), 1, owner, agents.NewScriptedCustomer())
	ctx := context.Background()

	g.Tick(ctx, 1)
	st := g.State()
	assert.Equal(t, 10000, st.Money)
	assert.Empty(t, st.Inventory)
	conv, ok := st.Conversation(st.Customers[0].ID)
	require.True(t, ok)
	assert.Equal(t, shop.OutcomeOngoing, conv.Outcome)

	g.Tick(ctx, 2)
	assert.Contains(t, owner.Seen()[1].LastResult, "Offer rejected")
}

func TestTalkSettlesThroughCustomer(t *testing.T) {
	owner := agents.NewScriptedOwner(engine.TalkToCustomer{Message: "$50 for the lamp?"}, engine.ViewTrades{})
	customer := agents.NewScriptedCustomer(shop.AcceptSellOffer{Message: "Fine.", Price: 50})
	g := newGame(testConfig(), 1, owner, customer)
	ctx := context.Background()

	require.True(t, g.Tick(ctx, 1))
	st := g.State()
	assert.Equal(t, 9950, st.Money)
	require.Len(t, st.Inventory, 1)
	assert.Equal(t, "lamp", st.Inventory[0].Item.ID)

	require.True(t, g.Tick(ctx, 2))
	seen := owner.Seen()
	assert.Contains(t, seen[1].LastResult, "Bought Brass Lamp")
	require.NotNil(t, seen[1].Customer)
	assert.Equal(t, shop.OutcomeTradeMade, seen[1].Customer.Outcome)
	require.Len(t, seen[1].Inventory, 1)
	assert.Equal(t, 100, seen[1].Inventory[0].MarketValue)

	cc := customer.Seen()
	require.Len(t, cc, 1)
	assert.Equal(t, "$50 for the lamp?", cc[0].OwnerMessage)
}

func TestOracleFailureStopsRun(t *testing.T) {
	g := newGame(testConfig(), 1, agents.NewScriptedOwner(), agents.NewScriptedCustomer())
	res := g.Run(context.Background())
	assert.Equal(t, string(engine.ReasonOracleFailed), res.Reason)
	assert.Equal(t, 1, res.Ticks)
	assert.Contains(t, res.OracleError, agents.ErrScriptExhausted.Error())
	assert.Equal(t, 1, g.State().Day)
}

func TestCustomerOracleFailureKeepsState(t *testing.T) {
	owner := agents.NewScriptedOwner(engine.TalkToCustomer{Message: "Hello"})
	g := newGame(testConfig(), 1, owner, agents.NewScriptedCustomer())

	assert.False(t, g.Tick(context.Background(), 1))
	st := g.State()
	assert.Equal(t, 10000, st.Money)
	assert.Equal(t, 1, st.Day)
	conv, ok := st.Conversation(st.Customers[0].ID)
	require.True(t, ok)
	assert.Len(t, conv.Messages, 1)
}

func TestOracleFailureCanBeSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTicks = 5
	cfg.StopOnOracleError = false
	g := newGame(cfg, 1, agents.NewScriptedOwner(), agents.NewScriptedCustomer())

	res := g.Run(context.Background())
	assert.Equal(t, string(engine.DriverMaxTicks), res.Reason)
	assert.Equal(t, 5, res.Ticks)
	assert.NotEmpty(t, res.OracleError)
}

func TestTickBudgetForcesNextDay(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDays = 2
	cfg.TicksPerDay = 2
	actions := make([]engine.OwnerAction, 10)
	for i := range actions {
		actions[i] = engine.ViewMoney{}
	}
	owner := agents.NewScriptedOwner(actions...)
	g := newGame(cfg, 1, owner, agents.NewScriptedCustomer())

	res := g.Run(context.Background())
	assert.Equal(t, string(engine.ReasonMaxDaysReached), res.Reason)
	assert.Equal(t, 7, res.Ticks)
	assert.Equal(t, 6, owner.Remaining())
}

func TestLookupPrice(t *testing.T) {
	g := newGame(testConfig(), 1, agents.NewScriptedOwner(), agents.NewScriptedCustomer())
	ctx := context.Background()

	out, err := g.Apply(ctx, engine.LookupPrice{ItemID: "lamp"})
	require.NoError(t, err)
	assert.Contains(t, out, "$100")
	assert.Contains(t, out, "Brass Lamp")

	out, err = g.Apply(ctx, engine.LookupPrice{ItemID: "nonexistent_item_12345"})
	require.NoError(t, err)
	assert.Contains(t, out, "No item")
}

func TestViewActions(t *testing.T) {
	g := newGame(testConfig(), 1, agents.NewScriptedOwner(), agents.NewScriptedCustomer())
	ctx := context.Background()

	out, _ := g.Apply(ctx, engine.ViewInventory{})
	assert.Equal(t, "Inventory is empty.", out)
	out, _ = g.Apply(ctx, engine.ViewTrades{})
	assert.Equal(t, "No trades yet.", out)

	_, err := g.Apply(ctx, engine.MakeOffer{Price: 90})
	require.NoError(t, err)

	out, _ = g.Apply(ctx, engine.ViewMoney{})
	assert.Contains(t, out, "$9,910")
	assert.Contains(t, out, "-$90")
	out, _ = g.Apply(ctx, engine.ViewInventory{})
	assert.Contains(t, out, "Brass Lamp")
	out, _ = g.Apply(ctx, engine.ViewTrades{})
	assert.Contains(t, out, "1 trades: 1 purchases, 0 sales")
}

func TestRandomRunKeepsBooksBalanced(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := engine.DefaultConfig()
		cfg.MaxTicks = 300
		cat := catalog.Default()
		gen := customers.NewGenerator(customers.DefaultConfig(), cat, rand.New(rand.NewSource(seed)))
		g := engine.NewGame(cfg, cat, gen,
			agents.NewRandomOwner(rand.New(rand.NewSource(seed+1)), cat),
			agents.NewHaggleCustomer(rand.New(rand.NewSource(seed+2))),
			rand.New(rand.NewSource(seed+3)))

		res := g.Run(context.Background())
		assert.Contains(t, []string{
			string(engine.ReasonOutOfMoney),
			string(engine.ReasonMaxDaysReached),
			string(engine.DriverMaxTicks),
		}, res.Reason)

		st := g.State()
		money := st.StartingMoney
		held := make(map[string]int)
		for _, tr := range st.Trades {
			if tr.Kind == shop.TradeBuy {
				money -= tr.Price
				held[tr.Item.ID]++
			} else {
				money += tr.Price
				held[tr.Item.ID]--
				require.NotNil(t, tr.Profit)
			}
		}
		assert.Equal(t, money, st.Money, "seed %d", seed)
		for _, inv := range st.Inventory {
			assert.Positive(t, held[inv.Item.ID], "inventory item without a buy trade")
			held[inv.Item.ID]--
		}
		for id, n := range held {
			assert.Zero(t, n, "item %s unaccounted for", id)
		}

		assert.Equal(t, res.Stats, ledger.Final(st.Ledger.Entries(), st.StartingMoney, st.Money, res.DaysPlayed))
	}
}

func TestSnapshotIsSafeDuringRun(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.MaxTicks = 200
	cat := catalog.Default()
	gen := customers.NewGenerator(customers.DefaultConfig(), cat, rand.New(rand.NewSource(7)))
	g := engine.NewGame(cfg, cat, gen,
		agents.NewRandomOwner(rand.New(rand.NewSource(8)), cat),
		agents.NewHaggleCustomer(rand.New(rand.NewSource(9))),
		rand.New(rand.NewSource(10)))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				snap := g.Snapshot()
				_ = ledger.Final(snap.Ledger, snap.StartingMoney, snap.Money, snap.Day)
			}
		}
	}()

	g.Run(context.Background())
	close(done)
	wg.Wait()
	assert.True(t, g.Snapshot().Ended || g.Snapshot().Tick == 200)
}
