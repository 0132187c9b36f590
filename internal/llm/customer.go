package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/talgya/pawnshop/internal/shop"
)

// CustomerOracle asks a language model to play the customer at the counter.
type CustomerOracle struct {
	client    Completer
	maxTokens int
}

// NewCustomerOracle creates a model-backed customer.
func NewCustomerOracle(client Completer) *CustomerOracle {
	return &CustomerOracle{client: client, maxTokens: 300}
}

// Respond asks the model how the customer answers the owner.
func (o *CustomerOracle) Respond(ctx context.Context, cc shop.CustomerContext) (shop.CustomerAction, error) {
	resp, err := o.client.Complete(ctx, buildCustomerSystemPrompt(cc), buildCustomerUserPrompt(cc), o.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("customer decision: %w", err)
	}
	return parseCustomerResponse(resp)
}

func buildCustomerSystemPrompt(cc shop.CustomerContext) string {
	wants := make([]string, 0, len(cc.Interests))
	for _, in := range cc.Interests {
		wants = append(wants, fmt.Sprintf("%s (up to $%d)", in.Item, in.MaxPrice))
	}
	personality := ""
	if cc.Personality != "" {
		personality = fmt.Sprintf("Your temperament is %s; let it color how you talk.\n", cc.Personality)
	}

	return fmt.Sprintf(
		`You are %s, a customer in a pawn shop.
%s
Your character:
- You want to sell: %s (%s) - %s
- Item ID: %s (mention this if the owner asks for item details or wants to look up pricing)
- Your minimum acceptable price: $%d (don't reveal this easily)
- Your asking price: $%d
- You would buy these items if the owner has them, never above the price shown: %s

Be realistic about haggling:
- Don't accept lowball offers below your minimum ($%d).
- Be willing to negotiate, but know your worth.
- Walk away if offers are too low or if you don't like the owner's attitude.
- If you want something from their inventory, ask about it and negotiate.
- Only accept when you are truly satisfied with the price.

Respond ONLY with a single JSON object:
- "action": one of "talk", "accept_sell_offer", "accept_buy_offer", "refuse_offer", "leave_shop"
- "message": what you say out loud
- "price": the agreed price in whole dollars (accept_sell_offer, accept_buy_offer)
- "item_name": name of the inventory item you are buying (accept_buy_offer only)`,
		cc.CustomerName, personality,
		cc.SellItem.Name, cc.SellItem.Condition, cc.SellItem.Description, cc.SellItem.ID,
		cc.MinPrice, cc.MaxPrice, strings.Join(wants, ", "), cc.MinPrice,
	)
}

func buildCustomerUserPrompt(cc shop.CustomerContext) string {
	var b strings.Builder

	if len(cc.Shelf) > 0 {
		b.WriteString("The shop has on display:\n")
		for _, it := range cc.Shelf {
			fmt.Fprintf(&b, "- %s (%s)\n", it.Name, it.Condition)
		}
		b.WriteString("\n")
	}

	if cc.TradeMade {
		b.WriteString("You already made a deal with the owner today.\n\n")
	}

	// The owner's latest line is the last transcript entry.
	history := cc.Transcript
	if n := len(history); n > 0 && history[n-1].Sender == shop.SenderOwner && history[n-1].Text == cc.OwnerMessage {
		history = history[:n-1]
	}
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range history {
			who := "Owner"
			if m.Sender == shop.SenderCustomer {
				who = "You"
			}
			fmt.Fprintf(&b, "%s: %s\n", who, m.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "The pawn shop owner just said: %q\n\nRespond with a single JSON object.", cc.OwnerMessage)
	return b.String()
}

func parseCustomerResponse(response string) (shop.CustomerAction, error) {
	d, err := parseDecision(response)
	if err != nil {
		return nil, err
	}

	switch d.Action {
	case "talk":
		return shop.Talk{Message: d.Message}, nil
	case "accept_sell_offer":
		if d.Price == nil {
			return nil, fmt.Errorf("accept_sell_offer without price")
		}
		return shop.AcceptSellOffer{Message: d.Message, Price: *d.Price}, nil
	case "accept_buy_offer":
		if d.Price == nil || d.ItemName == "" {
			return nil, fmt.Errorf("accept_buy_offer needs price and item_name")
		}
		return shop.AcceptBuyOffer{Message: d.Message, Price: *d.Price, ItemName: d.ItemName}, nil
	case "refuse_offer":
		return shop.RefuseOffer{Message: d.Message}, nil
	case "leave_shop":
		return shop.LeaveShop{Message: d.Message}, nil
	}
	return nil, fmt.Errorf("invalid customer action: %q", d.Action)
}
