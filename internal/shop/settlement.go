package shop

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/ledger"
)

// Settlement rejections. None of them change money, inventory or trades.
var (
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInsufficientFunds = errors.New("not enough money")
	ErrBelowMinimum      = errors.New("offer is below what the customer will accept")
	ErrNoCustomer        = errors.New("no customer at the counter")
	ErrCustomerGone      = errors.New("customer has left the shop")
	ErrAlreadySold       = errors.New("customer already sold their item")
	ErrInventoryIndex    = errors.New("no inventory item at that index")
	ErrNotInterested     = errors.New("customer is not interested in that item")
	ErrTooExpensive      = errors.New("price is more than the customer will pay")
	ErrUnknownItem       = errors.New("item is not in inventory")
)

// Owner-initiated sales succeed when the price is at most this fraction
// range of market value, drawn fresh per offer.
const (
	sellWillingnessLow  = 0.7
	sellWillingnessHigh = 1.0
)

// BuyOffer settles an owner offer for the active customer's item. The
// customer's private minimum gates acceptance.
func (s *State) BuyOffer(price int) (Trade, error) {
	return s.buy(price, true, true)
}

// BuyAccepted settles a price the customer already agreed to. No minimum check.
func (s *State) BuyAccepted(price int) (Trade, error) {
	return s.buy(price, false, false)
}

// SellOffer settles an owner offer to sell inventory[index] to the active
// customer. The customer accepts if the price is within a randomly drawn
// share of the item's market value.
func (s *State) SellOffer(index, price int, rng *rand.Rand) (Trade, error) {
	c, inv, err := s.checkSell(index, price)
	if err != nil {
		return Trade{}, err
	}
	willing := float64(catalog.ActualValue(inv.Item)) *
		(sellWillingnessLow + rng.Float64()*(sellWillingnessHigh-sellWillingnessLow))
	if float64(price) > willing {
		return Trade{}, ErrTooExpensive
	}
	return s.settleSell(c, index, price, true), nil
}

// SellAccepted settles a sale the customer already agreed to. The price may
// not exceed the customer's ceiling for the item.
func (s *State) SellAccepted(index, price int) (Trade, error) {
	c, inv, err := s.checkSell(index, price)
	if err != nil {
		return Trade{}, err
	}
	interest, _ := c.InterestIn(inv.Item.ID)
	if price > interest.MaxPrice {
		return Trade{}, ErrTooExpensive
	}
	return s.settleSell(c, index, price, false), nil
}

func (s *State) activeForTrade() (*customers.Customer, error) {
	c, ok := s.ActiveCustomer()
	if !ok {
		return nil, ErrNoCustomer
	}
	if conv, ok := s.Conversation(c.ID); ok && conv.Departed {
		return nil, ErrCustomerGone
	}
	return c, nil
}

func (s *State) buy(price int, gated, confirm bool) (Trade, error) {
	c, err := s.activeForTrade()
	if err != nil {
		return Trade{}, err
	}
	if price < 0 {
		return Trade{}, ErrNegativePrice
	}
	if s.boughtFrom(c.ID) {
		return Trade{}, ErrAlreadySold
	}
	if price > s.Money {
		return Trade{}, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, FormatMoney(s.Money), FormatMoney(price))
	}
	if gated && !c.IsOfferAcceptable(price) {
		return Trade{}, ErrBelowMinimum
	}

	item := c.SellOffer.Item
	s.Inventory = append(s.Inventory, InventoryItem{
		Item:          item,
		PurchasePrice: price,
		PurchaseDay:   s.Day,
		FromCustomer:  c.Name,
	})
	s.Money -= price

	t := Trade{
		ID:           uuid.NewString(),
		Day:          s.Day,
		Kind:         TradeBuy,
		Item:         item,
		Price:        price,
		CustomerID:   c.ID,
		CustomerName: c.Name,
	}
	s.Trades = append(s.Trades, t)
	s.Ledger.RecordDeal(s.Day, c.ID, c.Name, ledger.Deal{
		Kind:   ledger.DealBuy,
		ItemID: item.ID,
		Item:   item.Name,
		Price:  price,
	})

	confirmation := ""
	if confirm {
		confirmation = fmt.Sprintf("Deal! %s for my %s.", FormatMoney(price), item.Name)
	}
	s.markTraded(c, confirmation)

	slog.Info("bought item", "day", s.Day, "customer", c.Name, "item", item.Name,
		"price", price, "money", s.Money)
	return t, nil
}

func (s *State) checkSell(index, price int) (*customers.Customer, InventoryItem, error) {
	c, err := s.activeForTrade()
	if err != nil {
		return nil, InventoryItem{}, err
	}
	if price < 0 {
		return nil, InventoryItem{}, ErrNegativePrice
	}
	if index < 0 || index >= len(s.Inventory) {
		return nil, InventoryItem{}, fmt.Errorf("%w: %d (have %d)", ErrInventoryIndex, index, len(s.Inventory))
	}
	inv := s.Inventory[index]
	if !c.IsInterestedIn(inv.Item.ID) {
		return nil, InventoryItem{}, ErrNotInterested
	}
	return c, inv, nil
}

func (s *State) settleSell(c *customers.Customer, index, price int, confirm bool) Trade {
	inv := s.Inventory[index]
	s.Inventory = append(s.Inventory[:index:index], s.Inventory[index+1:]...)
	s.Money += price

	profit := price - inv.PurchasePrice
	t := Trade{
		ID:           uuid.NewString(),
		Day:          s.Day,
		Kind:         TradeSell,
		Item:         inv.Item,
		Price:        price,
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Profit:       &profit,
	}
	s.Trades = append(s.Trades, t)

	ledgerProfit := profit
	s.Ledger.RecordDeal(s.Day, c.ID, c.Name, ledger.Deal{
		Kind:   ledger.DealSell,
		ItemID: inv.Item.ID,
		Item:   inv.Item.Name,
		Price:  price,
		Profit: &ledgerProfit,
	})

	confirmation := ""
	if confirm {
		confirmation = fmt.Sprintf("I'll take the %s for %s.", inv.Item.Name, FormatMoney(price))
	}
	s.markTraded(c, confirmation)

	slog.Info("sold item", "day", s.Day, "customer", c.Name, "item", inv.Item.Name,
		"price", price, "profit", profit, "money", s.Money)
	return t
}

func (s *State) markTraded(c *customers.Customer, confirmation string) {
	conv := s.ConversationFor(c)
	conv.conclude(OutcomeTradeMade)
	conv.say(s.now(), SenderCustomer, confirmation)
}

func (s *State) boughtFrom(customerID string) bool {
	for _, t := range s.Trades {
		if t.Kind == TradeBuy && t.CustomerID == customerID && t.Day == s.Day {
			return true
		}
	}
	return false
}
