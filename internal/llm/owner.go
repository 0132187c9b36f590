package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/shop"
)

// Completer is the text-completion capability the oracles need.
type Completer interface {
	Complete(ctx context.Context, system, userPrompt string, maxTokens int) (string, error)
}

// decision is the JSON object both oracles ask the model for.
type decision struct {
	Action         string `json:"action"`
	Message        string `json:"message"`
	Price          *int   `json:"price"`
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name"`
	InventoryIndex *int   `json:"inventory_index"`
	Reasoning      string `json:"reasoning"`
}

func parseDecision(response string) (decision, error) {
	raw, err := extractJSON(response)
	if err != nil {
		return decision{}, err
	}
	var d decision
	if err := json.Unmarshal(raw, &d); err != nil {
		return decision{}, fmt.Errorf("parse decision: %w", err)
	}
	d.Action = strings.ToLower(strings.TrimSpace(d.Action))
	return d, nil
}

// OwnerOracle asks a language model to run the shop.
type OwnerOracle struct {
	client    Completer
	maxTokens int
}

// NewOwnerOracle creates a model-backed owner.
func NewOwnerOracle(client Completer) *OwnerOracle {
	return &OwnerOracle{client: client, maxTokens: 400}
}

// Decide asks the model for the next owner action.
func (o *OwnerOracle) Decide(ctx context.Context, oc engine.OwnerContext) (engine.OwnerAction, error) {
	resp, err := o.client.Complete(ctx, buildOwnerSystemPrompt(oc), buildOwnerUserPrompt(oc), o.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("owner decision: %w", err)
	}
	return parseOwnerResponse(resp)
}

func buildOwnerSystemPrompt(oc engine.OwnerContext) string {
	return fmt.Sprintf(
		`You are the owner of a pawn shop. Your goal is to maximize profit over %d days.

Important:
- Make offers through conversation (e.g., "I can offer you $100 for that jacket"). Customers can accept, refuse, or counter.
- Some customers get angry quickly at lowball offers and will leave. Read their reactions carefully.
- Don't reveal exact market values and then immediately lowball; customers will be insulted.
- After buying an item, or if you are low on money, ask the customer whether they want to buy anything from you.
- Move on to the next customer when the current one is done. Only go to the next day when no customers are left.
- Some items cost a lot and your money is limited, so buy wisely.

Respond ONLY with a single JSON object:
- "action": one of "talk", "lookup_item_price", "make_offer", "sell_item", "see_next_customer", "go_to_next_day", "view_items", "view_money", "view_trades"
- "message": what you say (talk only)
- "item_id": catalog item id (lookup_item_price only)
- "price": whole dollars (make_offer, sell_item)
- "inventory_index": index of the item to sell (sell_item only)
- "reasoning": one short sentence`,
		oc.MaxDays,
	)
}

func buildOwnerUserPrompt(oc engine.OwnerContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Day %d of %d. Money: %s (started with %s).\n",
		oc.Day, oc.MaxDays, shop.FormatMoney(oc.Money), shop.FormatMoney(oc.StartingMoney))

	if len(oc.Inventory) == 0 {
		b.WriteString("Inventory: empty.\n")
	} else {
		b.WriteString("Inventory:\n")
		for _, line := range oc.Inventory {
			fmt.Fprintf(&b, "- [%d] %s, paid %s, market value %s\n", line.Index,
				catalog.Describe(line.Item), shop.FormatMoney(line.PurchasePrice), shop.FormatMoney(line.MarketValue))
		}
	}

	if c := oc.Customer; c != nil {
		fmt.Fprintf(&b, "\nAt the counter: %s, who wants to sell %s (item id %s).\n",
			c.Name, catalog.Describe(c.SellItem), c.SellItem.ID)
		switch {
		case c.Departed:
			b.WriteString("They have left the shop.\n")
		case c.Outcome == shop.OutcomeTradeMade:
			b.WriteString("You already made a deal with them.\n")
		}
		if c.LastMessage != "" {
			fmt.Fprintf(&b, "They last said: %q\n", c.LastMessage)
		}
		fmt.Fprintf(&b, "Customers still in line including this one: %d.\n", oc.CustomersLeftToday)
	} else {
		b.WriteString("\nNo more customers today.\n")
	}

	if oc.LastResult != "" {
		fmt.Fprintf(&b, "\nResult of your last action:\n%s\n", oc.LastResult)
	}

	b.WriteString("\nWhat do you do next? Respond with a single JSON object.")
	return b.String()
}

func parseOwnerResponse(response string) (engine.OwnerAction, error) {
	d, err := parseDecision(response)
	if err != nil {
		return nil, err
	}

	switch d.Action {
	case "talk":
		if strings.TrimSpace(d.Message) == "" {
			return nil, fmt.Errorf("talk action without message")
		}
		return engine.TalkToCustomer{Message: d.Message}, nil
	case "lookup_item_price":
		if d.ItemID == "" {
			return nil, fmt.Errorf("lookup_item_price without item_id")
		}
		return engine.LookupPrice{ItemID: d.ItemID}, nil
	case "make_offer":
		if d.Price == nil {
			return nil, fmt.Errorf("make_offer without price")
		}
		return engine.MakeOffer{Price: *d.Price}, nil
	case "sell_item":
		if d.Price == nil || d.InventoryIndex == nil {
			return nil, fmt.Errorf("sell_item needs price and inventory_index")
		}
		return engine.SellItem{InventoryIndex: *d.InventoryIndex, Price: *d.Price}, nil
	case "see_next_customer":
		return engine.SeeNextCustomer{}, nil
	case "go_to_next_day":
		return engine.GoToNextDay{}, nil
	case "view_items":
		return engine.ViewInventory{}, nil
	case "view_money":
		return engine.ViewMoney{}, nil
	case "view_trades":
		return engine.ViewTrades{}, nil
	}
	return nil, fmt.Errorf("invalid owner action: %q", d.Action)
}
