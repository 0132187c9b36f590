package agents

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/shop"
)

var priceRe = regexp.MustCompile(`\$\s*(\d[\d,]*)`)

// HaggleCustomer is a rule-based customer. It reads dollar amounts out of
// the owner's message and answers by its private price range.
type HaggleCustomer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHaggleCustomer creates a haggling customer drawing from rng.
func NewHaggleCustomer(rng *rand.Rand) *HaggleCustomer {
	return &HaggleCustomer{rng: rng}
}

// Respond decides the customer's answer to the owner's latest message.
func (h *HaggleCustomer) Respond(_ context.Context, cc shop.CustomerContext) (shop.CustomerAction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	price, hasPrice := ExtractPrice(cc.OwnerMessage)

	// The owner is pitching something from the shelf.
	if in, ok := pitchedInterest(cc); ok {
		if !hasPrice {
			return shop.Talk{Message: fmt.Sprintf("I've been looking for a %s. What would you want for it?", in.Item)}, nil
		}
		if price <= in.MaxPrice {
			return shop.AcceptBuyOffer{
				Message:  fmt.Sprintf("$%d for the %s? You've got a deal.", price, in.Item),
				Price:    price,
				ItemName: in.Item,
			}, nil
		}
		counter := h.between(float64(in.MaxPrice), 0.8, 0.95)
		return shop.RefuseOffer{Message: fmt.Sprintf("That's steep. I'd pay $%d for the %s.", counter, in.Item)}, nil
	}

	if cc.TradeMade {
		if in, ok := shelved(cc); ok {
			return shop.Talk{Message: fmt.Sprintf("While I'm here, I see you have a %s. I might be interested.", in.Item)}, nil
		}
		return shop.Talk{Message: "Pleasure doing business with you."}, nil
	}

	if !hasPrice {
		return shop.Talk{Message: fmt.Sprintf("It's a %s, %s. I was hoping to get around $%d.",
			cc.SellItem.Name, cc.SellItem.Description, cc.MaxPrice)}, nil
	}

	if price >= cc.MinPrice {
		return shop.AcceptSellOffer{Message: fmt.Sprintf("$%d works for me. It's yours.", price), Price: price}, nil
	}

	if price*2 < cc.MinPrice {
		if quickTempered(cc.Personality) || h.rng.Float64() < 0.3 {
			return shop.LeaveShop{Message: "That's insulting. I'll take my business elsewhere."}, nil
		}
	}

	// Counter somewhere between the floor and the asking price.
	counter := cc.MinPrice + int(math.Round(float64(cc.MaxPrice-cc.MinPrice)*(0.3+h.rng.Float64()*0.7)))
	return shop.RefuseOffer{Message: fmt.Sprintf("I can't go that low. How about $%d?", counter)}, nil
}

func (h *HaggleCustomer) between(value, lo, hi float64) int {
	return int(math.Max(1, math.Round(value*(lo+h.rng.Float64()*(hi-lo)))))
}

func quickTempered(p customers.Personality) bool {
	return p == customers.PersonalityTouchy || p == customers.PersonalityAggressive
}

// ExtractPrice returns the first dollar amount in a message.
func ExtractPrice(msg string) (int, bool) {
	m := priceRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// pitchedInterest finds a wanted item that is on the shelf and named in the
// owner's message.
func pitchedInterest(cc shop.CustomerContext) (shop.InterestView, bool) {
	msg := strings.ToLower(cc.OwnerMessage)
	for _, in := range cc.Interests {
		if onShelf(cc, in.Item) && strings.Contains(msg, strings.ToLower(in.Item)) {
			return in, true
		}
	}
	return shop.InterestView{}, false
}

// shelved finds any wanted item that is on the shelf.
func shelved(cc shop.CustomerContext) (shop.InterestView, bool) {
	for _, in := range cc.Interests {
		if onShelf(cc, in.Item) {
			return in, true
		}
	}
	return shop.InterestView{}, false
}

func onShelf(cc shop.CustomerContext, name string) bool {
	for _, s := range cc.Shelf {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
