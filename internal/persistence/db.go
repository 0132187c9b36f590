// Package persistence archives finished runs: the run summary, its trades,
// the full ledger and every conversation line.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/pawnshop/internal/shop"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DB wraps the archive connection.
type DB struct {
	conn *sqlx.DB
}

// RunRecord is the summary row of one finished run.
type RunRecord struct {
	ID            string    `db:"id" json:"id"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	EndedAt       time.Time `db:"ended_at" json:"ended_at"`
	Seed          int64     `db:"seed" json:"seed"`
	OwnerAgent    string    `db:"owner_agent" json:"owner_agent"`
	CustomerAgent string    `db:"customer_agent" json:"customer_agent"`
	Reason        string    `db:"reason" json:"reason"`
	StartingMoney int       `db:"starting_money" json:"starting_money"`
	FinalMoney    int       `db:"final_money" json:"final_money"`
	Profit        int       `db:"profit" json:"profit"`
	DaysPlayed    int       `db:"days_played" json:"days_played"`
	Ticks         int       `db:"ticks" json:"ticks"`
	TotalTrades   int       `db:"total_trades" json:"total_trades"`
}

// TradeRow is an archived trade.
type TradeRow struct {
	ID           string `db:"id" json:"id"`
	RunID        string `db:"run_id" json:"run_id"`
	Seq          int    `db:"seq" json:"seq"`
	Day          int    `db:"day" json:"day"`
	Kind         string `db:"kind" json:"kind"`
	ItemID       string `db:"item_id" json:"item_id"`
	ItemName     string `db:"item_name" json:"item_name"`
	Price        int    `db:"price" json:"price"`
	CustomerID   string `db:"customer_id" json:"customer_id"`
	CustomerName string `db:"customer_name" json:"customer_name"`
	Profit       *int   `db:"profit" json:"profit,omitempty"`
}

// LedgerRow is an archived ledger entry. Payload is the entry's payload as
// JSON, empty for talked entries.
type LedgerRow struct {
	ID           string    `db:"id" json:"id"`
	RunID        string    `db:"run_id" json:"run_id"`
	Timestamp    time.Time `db:"ts" json:"timestamp"`
	Day          int       `db:"day" json:"day"`
	Kind         string    `db:"kind" json:"kind"`
	CustomerID   string    `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName string    `db:"customer_name" json:"customer_name,omitempty"`
	Payload      string    `db:"payload" json:"payload,omitempty"`
}

// MessageRow is one archived conversation line.
type MessageRow struct {
	RunID          string    `db:"run_id" json:"run_id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	Day            int       `db:"day" json:"day"`
	Seq            int       `db:"seq" json:"seq"`
	Timestamp      time.Time `db:"ts" json:"timestamp"`
	Sender         string    `db:"sender" json:"sender"`
	Text           string    `db:"text" json:"text"`
}

// Open connects to the archive and creates the schema if needed. Driver is
// "sqlite" (dsn is a file path) or "pgx" (dsn is a postgres URL).
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == DriverSQLite {
		// One writer at a time.
		conn.SetMaxOpenConns(1)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP NOT NULL,
			seed BIGINT NOT NULL,
			owner_agent TEXT NOT NULL,
			customer_agent TEXT NOT NULL,
			reason TEXT NOT NULL,
			starting_money INTEGER NOT NULL,
			final_money INTEGER NOT NULL,
			profit INTEGER NOT NULL,
			days_played INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			total_trades INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			day INTEGER NOT NULL,
			kind TEXT NOT NULL,
			item_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			price INTEGER NOT NULL,
			customer_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			profit INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS ledger (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			ts TIMESTAMP NOT NULL,
			day INTEGER NOT NULL,
			kind TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			run_id TEXT NOT NULL REFERENCES runs(id),
			conversation_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			ts TIMESTAMP NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (run_id, conversation_id, day, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_run ON ledger(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun writes the run summary with its trades, ledger and conversations
// in a single transaction.
func (db *DB) SaveRun(ctx context.Context, run RunRecord, st *shop.State) error {
	slog.Info("archiving run", "run", run.ID, "trades", len(st.Trades), "ledger", st.Ledger.Len())

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	run.StartedAt = run.StartedAt.UTC()
	run.EndedAt = run.EndedAt.UTC()
	if _, err := tx.NamedExecContext(ctx, `INSERT INTO runs
		(id, started_at, ended_at, seed, owner_agent, customer_agent, reason,
		 starting_money, final_money, profit, days_played, ticks, total_trades)
		VALUES (:id, :started_at, :ended_at, :seed, :owner_agent, :customer_agent, :reason,
		 :starting_money, :final_money, :profit, :days_played, :ticks, :total_trades)`, run); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for i, t := range st.Trades {
		row := TradeRow{
			ID: t.ID, RunID: run.ID, Seq: i, Day: t.Day, Kind: string(t.Kind),
			ItemID: t.Item.ID, ItemName: t.Item.Name, Price: t.Price,
			CustomerID: t.CustomerID, CustomerName: t.CustomerName, Profit: t.Profit,
		}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO trades
			(id, run_id, seq, day, kind, item_id, item_name, price, customer_id, customer_name, profit)
			VALUES (:id, :run_id, :seq, :day, :kind, :item_id, :item_name, :price, :customer_id, :customer_name, :profit)`, row); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}

	for _, e := range st.Ledger.Entries() {
		row := LedgerRow{
			ID: e.ID, RunID: run.ID, Timestamp: e.Timestamp.UTC(), Day: e.Day, Kind: string(e.Kind),
			CustomerID: e.CustomerID, CustomerName: e.CustomerName,
		}
		if e.Payload != nil {
			raw, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("marshal ledger payload %s: %w", e.ID, err)
			}
			row.Payload = string(raw)
		}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO ledger
			(id, run_id, ts, day, kind, customer_id, customer_name, payload)
			VALUES (:id, :run_id, :ts, :day, :kind, :customer_id, :customer_name, :payload)`, row); err != nil {
			return fmt.Errorf("insert ledger entry %s: %w", e.ID, err)
		}
	}

	for _, conv := range st.Conversations {
		for i, m := range conv.Messages {
			row := MessageRow{
				RunID: run.ID, ConversationID: conv.ID, Day: conv.Day, Seq: i,
				Timestamp: m.Timestamp.UTC(), Sender: string(m.Sender), Text: m.Text,
			}
			if _, err := tx.NamedExecContext(ctx, `INSERT INTO messages
				(run_id, conversation_id, day, seq, ts, sender, text)
				VALUES (:run_id, :conversation_id, :day, :seq, :ts, :sender, :text)`, row); err != nil {
				return fmt.Errorf("insert message %s/%d: %w", conv.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	slog.Info("run archived", "run", run.ID)
	return nil
}

// RecentRuns returns the most recently finished runs, newest first.
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	runs := []RunRecord{}
	err := db.conn.SelectContext(ctx, &runs, db.conn.Rebind(
		`SELECT * FROM runs ORDER BY ended_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	return runs, nil
}

// TradesForRun returns a run's trades in settlement order.
func (db *DB) TradesForRun(ctx context.Context, runID string) ([]TradeRow, error) {
	trades := []TradeRow{}
	err := db.conn.SelectContext(ctx, &trades, db.conn.Rebind(
		`SELECT * FROM trades WHERE run_id = ? ORDER BY seq`), runID)
	if err != nil {
		return nil, fmt.Errorf("trades for run %s: %w", runID, err)
	}
	return trades, nil
}

// LedgerForRun returns a run's ledger in append order. Entry IDs are
// time-ordered, so sorting by ID preserves it.
func (db *DB) LedgerForRun(ctx context.Context, runID string) ([]LedgerRow, error) {
	entries := []LedgerRow{}
	err := db.conn.SelectContext(ctx, &entries, db.conn.Rebind(
		`SELECT * FROM ledger WHERE run_id = ? ORDER BY id`), runID)
	if err != nil {
		return nil, fmt.Errorf("ledger for run %s: %w", runID, err)
	}
	return entries, nil
}

// MessagesForRun returns every conversation line of a run.
func (db *DB) MessagesForRun(ctx context.Context, runID string) ([]MessageRow, error) {
	msgs := []MessageRow{}
	err := db.conn.SelectContext(ctx, &msgs, db.conn.Rebind(
		`SELECT * FROM messages WHERE run_id = ? ORDER BY day, conversation_id, seq`), runID)
	if err != nil {
		return nil, fmt.Errorf("messages for run %s: %w", runID, err)
	}
	return msgs, nil
}
