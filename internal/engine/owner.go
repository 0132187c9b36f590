package engine

import (
	"context"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/shop"
)

// OwnerAction is one decision by the shop owner. The set of variants is closed.
type OwnerAction interface {
	ownerAction()
}

// TalkToCustomer says something to the active customer and waits for a reply.
type TalkToCustomer struct {
	Message string
}

// LookupPrice checks the market value of a catalog item.
type LookupPrice struct {
	ItemID string
}

// MakeOffer offers to buy the active customer's item.
type MakeOffer struct {
	Price int
}

// SellItem offers an inventory item to the active customer.
type SellItem struct {
	InventoryIndex int
	Price          int
}

// SeeNextCustomer calls the next customer in line.
type SeeNextCustomer struct{}

// GoToNextDay closes the shop for the day.
type GoToNextDay struct{}

// ViewInventory lists owned items.
type ViewInventory struct{}

// ViewMoney reports cash on hand.
type ViewMoney struct{}

// ViewTrades lists the trade history.
type ViewTrades struct{}

func (TalkToCustomer) ownerAction()  {}
func (LookupPrice) ownerAction()     {}
func (MakeOffer) ownerAction()       {}
func (SellItem) ownerAction()        {}
func (SeeNextCustomer) ownerAction() {}
func (GoToNextDay) ownerAction()     {}
func (ViewInventory) ownerAction()   {}
func (ViewMoney) ownerAction()       {}
func (ViewTrades) ownerAction()      {}

// ActionName returns the wire name of an owner action.
func ActionName(a OwnerAction) string {
	switch a.(type) {
	case TalkToCustomer:
		return "talk"
	case LookupPrice:
		return "lookup_item_price"
	case MakeOffer:
		return "make_offer"
	case SellItem:
		return "sell_item"
	case SeeNextCustomer:
		return "see_next_customer"
	case GoToNextDay:
		return "go_to_next_day"
	case ViewInventory:
		return "view_items"
	case ViewMoney:
		return "view_money"
	case ViewTrades:
		return "view_trades"
	}
	return "unknown"
}

// InventoryLine is an owned item as the owner sees it.
type InventoryLine struct {
	Index         int          `json:"index"`
	Item          catalog.Item `json:"item"`
	PurchasePrice int          `json:"purchase_price"`
	MarketValue   int          `json:"market_value"`
	FromCustomer  string       `json:"from_customer"`
}

// CustomerSummary is the public face of the active customer. It never
// carries private prices or buying ceilings.
type CustomerSummary struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Personality customers.Personality `json:"personality,omitempty"`
	SellItem    catalog.Item          `json:"sell_item"`
	Talked      bool                  `json:"talked"`
	Outcome     shop.Outcome          `json:"outcome,omitempty"`
	Departed    bool                  `json:"departed"`
	LastMessage string                `json:"last_message,omitempty"`
}

// OwnerContext is everything the owner oracle may see.
type OwnerContext struct {
	Tick               int
	Day                int
	MaxDays            int
	Money              int
	StartingMoney      int
	Inventory          []InventoryLine
	Customer           *CustomerSummary // Nil when nobody is at the counter
	CustomersLeftToday int
	LastResult         string // Outcome text of the previous action
}

// OwnerOracle decides the owner's next action.
type OwnerOracle interface {
	Decide(ctx context.Context, oc OwnerContext) (OwnerAction, error)
}

func inventoryLines(st *shop.State) []InventoryLine {
	lines := make([]InventoryLine, 0, len(st.Inventory))
	for i, inv := range st.Inventory {
		lines = append(lines, InventoryLine{
			Index:         i,
			Item:          inv.Item,
			PurchasePrice: inv.PurchasePrice,
			MarketValue:   catalog.ActualValue(inv.Item),
			FromCustomer:  inv.FromCustomer,
		})
	}
	return lines
}

func summarize(st *shop.State, c *customers.Customer) *CustomerSummary {
	sum := &CustomerSummary{
		ID:          c.ID,
		Name:        c.Name,
		Personality: c.Personality,
		SellItem:    c.SellOffer.Item,
	}
	if conv, ok := st.Conversation(c.ID); ok {
		sum.Talked = true
		sum.Outcome = conv.Outcome
		sum.Departed = conv.Departed
		sum.LastMessage = conv.LastCustomerMessage()
	}
	return sum
}
