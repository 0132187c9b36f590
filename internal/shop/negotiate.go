package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
)

var (
	// ErrTurnInFlight is returned when a conversation is asked for a second
	// customer response before the first one resolved.
	ErrTurnInFlight = errors.New("customer is still responding")

	// ErrOracle wraps failures of the customer decision source.
	ErrOracle = errors.New("customer oracle failed")
)

// CustomerAction is one customer response. The set of variants is closed.
type CustomerAction interface {
	customerAction()
}

// Talk continues the conversation.
type Talk struct {
	Message string
}

// AcceptSellOffer agrees to sell the customer's item to the shop.
type AcceptSellOffer struct {
	Message string
	Price   int
}

// AcceptBuyOffer agrees to buy an item from the shop's inventory.
type AcceptBuyOffer struct {
	Message  string
	Price    int
	ItemName string
}

// RefuseOffer declines the owner's latest offer.
type RefuseOffer struct {
	Message string
}

// LeaveShop ends the visit.
type LeaveShop struct {
	Message string
}

func (Talk) customerAction()            {}
func (AcceptSellOffer) customerAction() {}
func (AcceptBuyOffer) customerAction()  {}
func (RefuseOffer) customerAction()     {}
func (LeaveShop) customerAction()       {}

// ActionName returns the wire name of a customer action.
func ActionName(a CustomerAction) string {
	switch a.(type) {
	case Talk:
		return "talk"
	case AcceptSellOffer:
		return "accept_sell_offer"
	case AcceptBuyOffer:
		return "accept_buy_offer"
	case RefuseOffer:
		return "refuse_offer"
	case LeaveShop:
		return "leave_shop"
	}
	return "unknown"
}

// InterestView is a buying interest as the customer sees it.
type InterestView struct {
	ItemID   string
	Item     string
	MaxPrice int
}

// ShelfItem is an inventory item as the customer sees it: name and
// condition, never the purchase price.
type ShelfItem struct {
	Name      string
	Condition catalog.Condition
}

// CustomerContext is everything the customer oracle may see. It only ever
// holds the active customer's private data.
type CustomerContext struct {
	CustomerName string
	Personality  customers.Personality
	SellItem     catalog.Item
	MinPrice     int
	MaxPrice     int
	Interests    []InterestView
	Shelf        []ShelfItem
	Transcript   []Message
	OwnerMessage string
	TradeMade    bool
}

// CustomerOracle decides how a customer responds to the owner.
type CustomerOracle interface {
	Respond(ctx context.Context, cc CustomerContext) (CustomerAction, error)
}

// Exchange is the result of one negotiation turn.
type Exchange struct {
	Action    CustomerAction
	Reply     string  // What the customer said
	Outcome   Outcome // Conversation outcome after the turn
	Trade     *Trade  // Set when the turn settled a trade
	Rejection error   // Set when the customer accepted but settlement refused
}

// Negotiate sends an owner message to the active customer and applies the
// customer's response. Settlement refusals are reported in Exchange.Rejection
// and never returned as errors.
func (s *State) Negotiate(ctx context.Context, oracle CustomerOracle, ownerMessage string) (Exchange, error) {
	c, ok := s.ActiveCustomer()
	if !ok {
		return Exchange{}, ErrNoCustomer
	}
	conv := s.ConversationFor(c)
	if conv.Departed {
		return Exchange{}, ErrCustomerGone
	}
	if conv.pending {
		return Exchange{}, ErrTurnInFlight
	}
	conv.pending = true
	defer func() { conv.pending = false }()

	conv.say(s.now(), SenderOwner, ownerMessage)

	action, err := oracle.Respond(ctx, s.customerContext(c, conv, ownerMessage))
	if err != nil {
		return Exchange{}, fmt.Errorf("%w: %w", ErrOracle, err)
	}
	if action == nil {
		return Exchange{}, fmt.Errorf("%w: empty response", ErrOracle)
	}

	ex := Exchange{Action: action}
	switch a := action.(type) {
	case Talk:
		ex.Reply = a.Message
		conv.say(s.now(), SenderCustomer, a.Message)

	case AcceptSellOffer:
		ex.Reply = a.Message
		conv.say(s.now(), SenderCustomer, a.Message)
		t, err := s.BuyAccepted(a.Price)
		s.settled(conv, &ex, t, err)

	case AcceptBuyOffer:
		ex.Reply = a.Message
		conv.say(s.now(), SenderCustomer, a.Message)
		var t Trade
		idx, found := s.InventoryIndexByName(a.ItemName)
		if !found {
			err = fmt.Errorf("%w: %q", ErrUnknownItem, a.ItemName)
		} else {
			t, err = s.SellAccepted(idx, a.Price)
		}
		s.settled(conv, &ex, t, err)

	case RefuseOffer:
		ex.Reply = a.Message
		if ex.Reply == "" {
			ex.Reply = "No thanks."
		}
		conv.say(s.now(), SenderCustomer, ex.Reply)

	case LeaveShop:
		ex.Reply = a.Message
		conv.say(s.now(), SenderCustomer, a.Message)
		s.leave(c, conv, a.Message)
	}

	ex.Outcome = conv.Outcome
	return ex, nil
}

// settled records a settlement result on the exchange; a refusal is
// explained in the conversation by the owner.
func (s *State) settled(conv *Conversation, ex *Exchange, t Trade, err error) {
	if err != nil {
		ex.Rejection = err
		conv.say(s.now(), SenderOwner, RejectionText(err))
		return
	}
	ex.Trade = &t
}

func (s *State) leave(c *customers.Customer, conv *Conversation, reason string) {
	conv.Departed = true
	conv.conclude(OutcomeCustomerLeft)
	s.Ledger.RecordLeft(s.Day, c.ID, c.Name, reason)
}

func (s *State) customerContext(c *customers.Customer, conv *Conversation, ownerMessage string) CustomerContext {
	interests := make([]InterestView, 0, len(c.BuyingInterests))
	for _, in := range c.BuyingInterests {
		view := InterestView{ItemID: in.ItemID, Item: in.ItemID, MaxPrice: in.MaxPrice}
		if s.Catalog != nil {
			if item, ok := s.Catalog.ItemByID(in.ItemID); ok {
				view.Item = item.Name
			}
		}
		interests = append(interests, view)
	}

	shelf := make([]ShelfItem, 0, len(s.Inventory))
	for _, inv := range s.Inventory {
		shelf = append(shelf, ShelfItem{Name: inv.Item.Name, Condition: inv.Item.Condition})
	}

	transcript := make([]Message, len(conv.Messages))
	copy(transcript, conv.Messages)

	return CustomerContext{
		CustomerName: c.Name,
		Personality:  c.Personality,
		SellItem:     c.SellOffer.Item,
		MinPrice:     c.SellOffer.MinPrice,
		MaxPrice:     c.SellOffer.MaxPrice,
		Interests:    interests,
		Shelf:        shelf,
		Transcript:   transcript,
		OwnerMessage: ownerMessage,
		TradeMade:    conv.Outcome == OutcomeTradeMade,
	}
}

// RejectionText turns a settlement error into something the owner can say.
func RejectionText(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "Sorry, I can't afford that right now."
	case errors.Is(err, ErrBelowMinimum):
		return "That offer doesn't work for us."
	case errors.Is(err, ErrAlreadySold):
		return "We already settled on your item."
	case errors.Is(err, ErrUnknownItem), errors.Is(err, ErrInventoryIndex):
		return "Sorry, I don't have that in stock."
	case errors.Is(err, ErrNotInterested):
		return "That's not something you were looking for."
	case errors.Is(err, ErrTooExpensive):
		return "I can't let it go for that."
	case errors.Is(err, ErrNegativePrice):
		return "That price doesn't make sense."
	}
	return "We can't make that deal."
}
