// Game ties the shop state, customer generator and both oracles together
// and runs them each tick.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/shop"
)

// EndReason is a terminal game condition. These are outcomes, not errors.
type EndReason string

const (
	ReasonNone           EndReason = ""
	ReasonOutOfMoney     EndReason = "out_of_money"
	ReasonMaxDaysReached EndReason = "max_days_reached"
	ReasonOracleFailed   EndReason = "oracle_unavailable"
)

// Config holds the rules of one run.
type Config struct {
	StartingMoney     int
	MaxDays           int
	MaxTicks          int           // Hard ceiling on ticks; 0 means none
	TicksPerDay       int           // Forces a day advance after this many owner actions; 0 means none
	TickInterval      time.Duration // Pause between ticks
	StopOnOracleError bool          // End the run when an oracle call fails
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		StartingMoney:     10000,
		MaxDays:           7,
		MaxTicks:          200,
		StopOnOracleError: true,
	}
}

// Game is the progression controller. The shop state is touched only by
// the goroutine running ticks; other goroutines read Snapshot.
type Game struct {
	cfg      Config
	state    *shop.State
	gen      *customers.Generator
	owner    OwnerOracle
	customer shop.CustomerOracle
	rng      *rand.Rand

	lastResult string
	dayTicks   int
	ended      EndReason
	oracleErr  error

	driver *Engine

	mu   sync.RWMutex
	snap Snapshot
}

// NewGame opens the shop on day 1 with a fresh roster.
func NewGame(cfg Config, cat *catalog.Catalog, gen *customers.Generator, owner OwnerOracle, customer shop.CustomerOracle, rng *rand.Rand) *Game {
	g := &Game{
		cfg:      cfg,
		state:    shop.NewState(cfg.StartingMoney, cat, ledger.New()),
		gen:      gen,
		owner:    owner,
		customer: customer,
		rng:      rng,
	}
	g.openDay(1)
	g.publish()
	return g
}

// State exposes the shop state to the goroutine driving the game.
func (g *Game) State() *shop.State {
	return g.state
}

// Config returns the rules the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// CheckEnd evaluates terminal conditions. Running out of money wins over
// running out of days.
func (g *Game) CheckEnd() (EndReason, bool) {
	if g.state.Money <= 0 {
		return ReasonOutOfMoney, true
	}
	if g.state.Day > g.cfg.MaxDays {
		return ReasonMaxDaysReached, true
	}
	return ReasonNone, false
}

// Tick runs one owner decision. It returns false once the game is over.
func (g *Game) Tick(ctx context.Context, tick int) bool {
	g.state.Tick = tick
	defer g.publish()

	if reason, ended := g.CheckEnd(); ended {
		g.ended = reason
		return false
	}

	if g.cfg.TicksPerDay > 0 && g.dayTicks >= g.cfg.TicksPerDay {
		slog.Info("day tick budget spent", "day", g.state.Day, "ticks", g.dayTicks)
		g.lastResult = g.advanceDay()
		return true
	}

	action, err := g.owner.Decide(ctx, g.ownerContext())
	if err != nil {
		return g.oracleFailed("owner", err)
	}
	if action == nil {
		return g.oracleFailed("owner", errors.New("no action returned"))
	}

	result, err := g.Apply(ctx, action)
	if err != nil {
		return g.oracleFailed("customer", err)
	}

	slog.Debug("owner action", "tick", tick, "day", g.state.Day, "action", ActionName(action), "result", result)
	g.lastResult = result
	g.dayTicks++
	return true
}

func (g *Game) oracleFailed(who string, err error) bool {
	g.oracleErr = err
	g.lastResult = fmt.Sprintf("Something went wrong: %v", err)
	slog.Warn("oracle call failed", "oracle", who, "tick", g.state.Tick, "day", g.state.Day, "error", err)
	if g.cfg.StopOnOracleError {
		g.ended = ReasonOracleFailed
		return false
	}
	g.dayTicks++
	return true
}

// Apply executes one owner action and returns the text the owner sees.
// Invalid actions are reported in the text; only oracle failures are errors.
func (g *Game) Apply(ctx context.Context, action OwnerAction) (string, error) {
	st := g.state
	switch a := action.(type) {
	case TalkToCustomer:
		return g.talk(ctx, a.Message)

	case LookupPrice:
		if st.Catalog == nil {
			return "The price guide is unavailable.", nil
		}
		item, ok := st.Catalog.ItemByID(a.ItemID)
		if !ok {
			return fmt.Sprintf("No item with id %q in the price guide.", a.ItemID), nil
		}
		return fmt.Sprintf("%s: market value %s. %s", catalog.Describe(item),
			shop.FormatMoney(catalog.ActualValue(item)), categoryNote(item)), nil

	case MakeOffer:
		t, err := st.MakeOffer(a.Price)
		if err != nil {
			return "Offer rejected: " + err.Error(), nil
		}
		return fmt.Sprintf("Bought %s from %s for %s. Money: %s.",
			t.Item.Name, t.CustomerName, shop.FormatMoney(t.Price), shop.FormatMoney(st.Money)), nil

	case SellItem:
		t, err := st.OfferItem(a.InventoryIndex, a.Price, g.rng)
		if err != nil {
			return "Sale rejected: " + err.Error(), nil
		}
		return fmt.Sprintf("Sold %s to %s for %s (profit %s). Money: %s.",
			t.Item.Name, t.CustomerName, shop.FormatMoney(t.Price), shop.FormatMoney(*t.Profit),
			shop.FormatMoney(st.Money)), nil

	case SeeNextCustomer:
		if !st.Advance() {
			return "No more customers today. Go to the next day.", nil
		}
		c, _ := st.ActiveCustomer()
		return fmt.Sprintf("Next customer: %s wants to sell %s.", c.Name, c.ItemDescription()), nil

	case GoToNextDay:
		return g.advanceDay(), nil

	case ViewInventory:
		return describeInventory(st), nil

	case ViewMoney:
		delta := st.Money - st.StartingMoney
		return fmt.Sprintf("Money: %s (%s since opening with %s).",
			shop.FormatMoney(st.Money), signedMoney(delta), shop.FormatMoney(st.StartingMoney)), nil

	case ViewTrades:
		return describeTrades(st), nil
	}
	return "", fmt.Errorf("unhandled owner action %T", action)
}

func (g *Game) talk(ctx context.Context, message string) (string, error) {
	st := g.state
	c, ok := st.ActiveCustomer()
	if !ok {
		return "There is no customer at the counter.", nil
	}

	ex, err := st.Negotiate(ctx, g.customer, message)
	switch {
	case errors.Is(err, shop.ErrOracle):
		return "", err
	case err != nil:
		return fmt.Sprintf("%s: %v", c.Name, err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", c.Name, ex.Reply)
	if ex.Rejection != nil {
		fmt.Fprintf(&b, "\n(No deal: %v)", ex.Rejection)
	}
	if t := ex.Trade; t != nil {
		if t.Kind == shop.TradeBuy {
			fmt.Fprintf(&b, "\nBought %s for %s.", t.Item.Name, shop.FormatMoney(t.Price))
		} else {
			fmt.Fprintf(&b, "\nSold %s for %s (profit %s).", t.Item.Name, shop.FormatMoney(t.Price), shop.FormatMoney(*t.Profit))
		}
	}
	if ex.Outcome == shop.OutcomeCustomerLeft {
		if conv, ok := st.Conversation(c.ID); ok && conv.Departed {
			fmt.Fprintf(&b, "\n%s left the shop.", c.Name)
		}
	}
	return b.String(), nil
}

// advanceDay closes the current day and opens the next one while days remain.
func (g *Game) advanceDay() string {
	st := g.state
	closing := st.Day
	st.Ledger.RecordDayEnd(closing, st.Money, len(st.Inventory))
	logDailyReport(ledger.Daily(st.Ledger.Entries(), closing), st.Money, len(st.Inventory))

	g.dayTicks = 0
	next := closing + 1
	if next > g.cfg.MaxDays {
		st.SetRoster(next, nil)
		return fmt.Sprintf("Day %d is over. The shop is closed for good.", closing)
	}
	g.openDay(next)
	return fmt.Sprintf("Day %d begins. %d customers are waiting.", next, len(st.Customers))
}

func (g *Game) openDay(day int) {
	roster := g.gen.Generate(day)
	g.state.SetRoster(day, roster)
	slog.Info("day started", "day", day, "customers", len(roster), "money", g.state.Money)
}

func (g *Game) ownerContext() OwnerContext {
	st := g.state
	oc := OwnerContext{
		Tick:               st.Tick,
		Day:                st.Day,
		MaxDays:            g.cfg.MaxDays,
		Money:              st.Money,
		StartingMoney:      st.StartingMoney,
		Inventory:          inventoryLines(st),
		CustomersLeftToday: st.CustomersLeft(),
		LastResult:         g.lastResult,
	}
	if c, ok := st.ActiveCustomer(); ok {
		oc.Customer = summarize(st, c)
	}
	return oc
}

// Result is the outcome of a finished run.
type Result struct {
	Reason        string            `json:"reason"`
	DriverReason  DriverReason      `json:"driver_reason"`
	StartingMoney int               `json:"starting_money"`
	FinalMoney    int               `json:"final_money"`
	Profit        int               `json:"profit"` // FinalMoney - StartingMoney
	TotalTrades   int               `json:"total_trades"`
	DaysPlayed    int               `json:"days_played"`
	Ticks         int               `json:"ticks"`
	OracleError   string            `json:"oracle_error,omitempty"`
	Stats         ledger.FinalStats `json:"stats"`
}

// Run drives the game until it ends, the tick ceiling is hit or ctx is done.
func (g *Game) Run(ctx context.Context) Result {
	driver := NewEngine(g.cfg.MaxTicks, g.cfg.TickInterval)
	driver.OnTick = g.Tick
	g.mu.Lock()
	g.driver = driver
	g.mu.Unlock()

	reason := driver.Run(ctx)
	res := g.Result(reason, driver.Tick)
	logFinalReport(res)
	return res
}

// Stop asks a running game to halt before its next tick.
func (g *Game) Stop() {
	g.mu.RLock()
	d := g.driver
	g.mu.RUnlock()
	if d != nil {
		d.Stop()
	}
}

// Result summarizes the game as it stands.
func (g *Game) Result(driverReason DriverReason, ticks int) Result {
	st := g.state
	reason := string(g.ended)
	if reason == "" {
		reason = string(driverReason)
	}
	res := Result{
		Reason:        reason,
		DriverReason:  driverReason,
		StartingMoney: st.StartingMoney,
		FinalMoney:    st.Money,
		Profit:        st.Money - st.StartingMoney,
		TotalTrades:   len(st.Trades),
		DaysPlayed:    g.DaysPlayed(),
		Ticks:         ticks,
	}
	if g.oracleErr != nil {
		res.OracleError = g.oracleErr.Error()
	}
	res.Stats = ledger.Final(st.Ledger.Entries(), st.StartingMoney, st.Money, res.DaysPlayed)
	return res
}

// DaysPlayed counts days the shop was open.
func (g *Game) DaysPlayed() int {
	return min(g.state.Day, g.cfg.MaxDays)
}

// Ended reports the terminal condition, if one was reached.
func (g *Game) Ended() EndReason {
	return g.ended
}

func categoryNote(item catalog.Item) string {
	return fmt.Sprintf("Category: %s.", strings.ReplaceAll(string(item.Category), "_", " "))
}

func signedMoney(amount int) string {
	if amount >= 0 {
		return "+" + shop.FormatMoney(amount)
	}
	return shop.FormatMoney(amount)
}

func describeInventory(st *shop.State) string {
	if len(st.Inventory) == 0 {
		return "Inventory is empty."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory (%d items):", len(st.Inventory))
	for _, line := range inventoryLines(st) {
		fmt.Fprintf(&b, "\n%d. %s, paid %s on day %d, market value %s",
			line.Index, catalog.Describe(line.Item), shop.FormatMoney(line.PurchasePrice),
			st.Inventory[line.Index].PurchaseDay, shop.FormatMoney(line.MarketValue))
	}
	return b.String()
}

func describeTrades(st *shop.State) string {
	if len(st.Trades) == 0 {
		return "No trades yet."
	}
	buys, sells := 0, 0
	var lines strings.Builder
	for i, t := range st.Trades {
		if t.Kind == shop.TradeBuy {
			buys++
		} else {
			sells++
		}
		fmt.Fprintf(&lines, "\n%d. Day %d: %s %s for %s with %s", i+1, t.Day,
			strings.ToUpper(string(t.Kind)), t.Item.Name, shop.FormatMoney(t.Price), t.CustomerName)
		if t.Profit != nil {
			fmt.Fprintf(&lines, " (profit %s)", shop.FormatMoney(*t.Profit))
		}
	}
	return fmt.Sprintf("%d trades: %d purchases, %d sales, total profit %s.%s",
		len(st.Trades), buys, sells, shop.FormatMoney(st.TotalProfit()), lines.String())
}
