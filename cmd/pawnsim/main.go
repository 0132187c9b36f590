// Command pawnsim runs a pawn shop for a fixed number of days: customers
// arrive, the owner haggles, and every deal settles against the shop's cash.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/pawnshop/internal/agents"
	"github.com/talgya/pawnshop/internal/api"
	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/config"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/entropy"
	"github.com/talgya/pawnshop/internal/llm"
	"github.com/talgya/pawnshop/internal/persistence"
	"github.com/talgya/pawnshop/internal/shop"
)

func main() {
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Log.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	runID := uuid.NewString()
	slog.Info("pawn shop opening",
		"run", runID,
		"seed", cfg.Game.Seed,
		"starting_money", shop.FormatMoney(cfg.Game.StartingMoney),
		"max_days", cfg.Game.MaxDays,
		"owner", cfg.Agents.Owner,
		"customer", cfg.Agents.Customer,
	)

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Database.DSN != "" {
		if cfg.Database.Driver == config.DriverSQLite {
			if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
				os.MkdirAll(dir, 0755)
			}
		}
		db, err = persistence.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "driver", cfg.Database.Driver)
	}

	// ── Randomness ────────────────────────────────────────────────────
	src := entropy.NewSource(cfg.Entropy.RandomOrgKey, cfg.Game.Seed)
	if cfg.Entropy.RandomOrgKey != "" {
		slog.Info("random.org entropy enabled (runs are not reproducible)")
	}
	rng := rand.New(src)

	// ── Agents ────────────────────────────────────────────────────────
	cat := catalog.Default()
	gen := customers.NewGenerator(cfg.Customers(), cat, rng)
	owner, customer := buildAgents(cfg, cat, rng)

	game := engine.NewGame(cfg.Engine(), cat, gen, owner, customer, rng)

	// ── HTTP API ──────────────────────────────────────────────────────
	var apiServer *api.Server
	if cfg.API.Port > 0 {
		apiServer = &api.Server{Game: game, DB: db, Port: cfg.API.Port}
		apiServer.Start()
	}

	// ── Start ─────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	res := game.Run(ctx)
	ended := time.Now()

	if db != nil {
		run := persistence.RunRecord{
			ID:            runID,
			StartedAt:     started,
			EndedAt:       ended,
			Seed:          cfg.Game.Seed,
			OwnerAgent:    cfg.Agents.Owner,
			CustomerAgent: cfg.Agents.Customer,
			Reason:        res.Reason,
			StartingMoney: res.StartingMoney,
			FinalMoney:    res.FinalMoney,
			Profit:        res.Profit,
			DaysPlayed:    res.DaysPlayed,
			Ticks:         res.Ticks,
			TotalTrades:   res.TotalTrades,
		}
		// The game has stopped ticking, so its state is ours to read.
		saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.SaveRun(saveCtx, run, game.State()); err != nil {
			slog.Error("archive failed", "error", err)
		}
		cancel()
	}

	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		apiServer.Shutdown(shutdownCtx)
		cancel()
	}

	fmt.Printf("\nShop closed (%s) after %d days: %s -> %s (%s), %d trades.\n",
		res.Reason, res.DaysPlayed,
		shop.FormatMoney(res.StartingMoney), shop.FormatMoney(res.FinalMoney),
		shop.FormatMoney(res.Profit), res.TotalTrades)
}

func buildAgents(cfg *config.Config, cat *catalog.Catalog, rng *rand.Rand) (engine.OwnerOracle, shop.CustomerOracle) {
	var client *llm.Client
	if cfg.UsesLLM() {
		client = llm.NewClient(cfg.Client())
		slog.Info("LLM client enabled", "model", cfg.LLM.Model)
	}

	var owner engine.OwnerOracle = agents.NewRandomOwner(rng, cat)
	if cfg.Agents.Owner == config.OwnerLLM {
		owner = llm.NewOwnerOracle(client)
	}

	var customer shop.CustomerOracle = agents.NewHaggleCustomer(rng)
	if cfg.Agents.Customer == config.CustomerLLM {
		customer = llm.NewCustomerOracle(client)
	}
	return owner, customer
}
