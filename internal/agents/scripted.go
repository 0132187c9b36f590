// Package agents provides the rule-based decision sources: a random shop
// owner, a haggling customer, and scripted doubles that replay fixed actions.
package agents

import (
	"context"
	"errors"
	"sync"

	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/shop"
)

// ErrScriptExhausted is returned once a scripted oracle has no actions left.
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptedOwner replays a fixed list of owner actions and records every
// context it was shown.
type ScriptedOwner struct {
	mu      sync.Mutex
	actions []engine.OwnerAction
	next    int
	seen    []engine.OwnerContext
}

// NewScriptedOwner creates an owner that plays the given actions in order.
func NewScriptedOwner(actions ...engine.OwnerAction) *ScriptedOwner {
	return &ScriptedOwner{actions: actions}
}

// Decide returns the next scripted action.
func (s *ScriptedOwner) Decide(_ context.Context, oc engine.OwnerContext) (engine.OwnerAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, oc)
	if s.next >= len(s.actions) {
		return nil, ErrScriptExhausted
	}
	a := s.actions[s.next]
	s.next++
	return a, nil
}

// Seen returns the contexts passed to Decide so far.
func (s *ScriptedOwner) Seen() []engine.OwnerContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.OwnerContext(nil), s.seen...)
}

// Remaining returns how many actions are left.
func (s *ScriptedOwner) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions) - s.next
}

// ScriptedCustomer replays a fixed list of customer responses.
type ScriptedCustomer struct {
	mu      sync.Mutex
	actions []shop.CustomerAction
	next    int
	seen    []shop.CustomerContext
}

// NewScriptedCustomer creates a customer that answers with the given actions in order.
func NewScriptedCustomer(actions ...shop.CustomerAction) *ScriptedCustomer {
	return &ScriptedCustomer{actions: actions}
}

// Respond returns the next scripted action.
func (s *ScriptedCustomer) Respond(_ context.Context, cc shop.CustomerContext) (shop.CustomerAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, cc)
	if s.next >= len(s.actions) {
		return nil, ErrScriptExhausted
	}
	a := s.actions[s.next]
	s.next++
	return a, nil
}

// Seen returns the contexts passed to Respond so far.
func (s *ScriptedCustomer) Seen() []shop.CustomerContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shop.CustomerContext(nil), s.seen...)
}
