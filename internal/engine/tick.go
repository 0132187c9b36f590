// Package engine provides the tick driver and the game progression
// controller that runs one pawn-shop simulation.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DriverReason is why the tick loop stopped.
type DriverReason string

const (
	DriverCompleted DriverReason = "completed"         // OnTick returned false
	DriverMaxTicks  DriverReason = "max_ticks_reached" // Hard ceiling hit
	DriverStopped   DriverReason = "stopped"           // Stop() called
	DriverCancelled DriverReason = "cancelled"         // Context done
)

// Engine drives a simulation forward one tick at a time. Ticks are strictly
// sequential: tick N+1 starts only after tick N's callback returns.
type Engine struct {
	Tick     int           // Ticks run so far
	MaxTicks int           // Hard ceiling; 0 means no ceiling
	Interval time.Duration // Pause between ticks; 0 runs flat out

	// Callbacks populated during setup.
	OnTick func(ctx context.Context, tick int) bool // Return false to finish
	OnEnd  func(tick int, reason DriverReason)

	stop     chan struct{}
	stopOnce sync.Once
}

// NewEngine creates a driver with the given ceiling and pacing.
func NewEngine(maxTicks int, interval time.Duration) *Engine {
	return &Engine{
		MaxTicks: maxTicks,
		Interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run loops until OnTick returns false, the ceiling is hit, Stop is called
// or ctx is done. OnEnd is called exactly once.
func (e *Engine) Run(ctx context.Context) DriverReason {
	if e.stop == nil {
		e.stop = make(chan struct{})
	}
	slog.Info("simulation engine started", "tick", e.Tick, "max_ticks", e.MaxTicks)

	reason := e.loop(ctx)

	slog.Info("simulation engine stopped", "tick", e.Tick, "reason", reason)
	if e.OnEnd != nil {
		e.OnEnd(e.Tick, reason)
	}
	return reason
}

func (e *Engine) loop(ctx context.Context) DriverReason {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return DriverCancelled
		case <-e.stop:
			return DriverStopped
		default:
		}

		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			return DriverMaxTicks
		}

		e.Tick++
		if e.OnTick != nil && !e.OnTick(ctx, e.Tick) {
			return DriverCompleted
		}

		if e.Interval <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(e.Interval)
			defer timer.Stop()
		} else {
			timer.Reset(e.Interval)
		}
		select {
		case <-ctx.Done():
			return DriverCancelled
		case <-e.stop:
			return DriverStopped
		case <-timer.C:
		}
	}
}

// Stop halts the loop before the next tick. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.stop != nil {
			close(e.stop)
		}
	})
}
