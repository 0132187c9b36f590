package agents

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/shop"
)

// Owner action weights for the random owner. Talking and dealing dominate so
// a run spends most ticks negotiating rather than browsing.
var randomWeights = []struct {
	name   string
	weight int
}{
	{"talk", 4},
	{"offer", 3},
	{"sell", 2},
	{"next", 2},
	{"lookup", 1},
	{"day", 1},
	{"inventory", 1},
	{"money", 1},
	{"trades", 1},
}

var smallTalk = []string{
	"What can you tell me about it?",
	"Where did you get this?",
	"Is there anything you'd like to buy today?",
	"How much are you hoping to get?",
	"Take a look around, I have a few nice pieces.",
}

// RandomOwner picks owner actions at random with plausible parameters.
type RandomOwner struct {
	mu      sync.Mutex
	rng     *rand.Rand
	catalog *catalog.Catalog
}

// NewRandomOwner creates a random owner drawing from rng.
func NewRandomOwner(rng *rand.Rand, cat *catalog.Catalog) *RandomOwner {
	return &RandomOwner{rng: rng, catalog: cat}
}

// Decide picks one action. Actions that need inventory are only drawn when
// there is some. With nobody at the counter the owner closes for the day.
func (o *RandomOwner) Decide(_ context.Context, oc engine.OwnerContext) (engine.OwnerAction, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if oc.Customer == nil {
		return engine.GoToNextDay{}, nil
	}
	if oc.Customer.Departed {
		return engine.SeeNextCustomer{}, nil
	}

	total := 0
	for _, w := range randomWeights {
		total += w.weight
	}
	for {
		pick := o.rng.Intn(total)
		for _, w := range randomWeights {
			if pick >= w.weight {
				pick -= w.weight
				continue
			}
			if a, ok := o.build(w.name, oc); ok {
				return a, nil
			}
			break
		}
	}
}

func (o *RandomOwner) build(name string, oc engine.OwnerContext) (engine.OwnerAction, bool) {
	switch name {
	case "talk":
		return engine.TalkToCustomer{Message: o.talkLine(oc)}, true
	case "offer":
		if oc.Customer.Outcome == shop.OutcomeTradeMade {
			return nil, false
		}
		value := float64(catalog.ActualValue(oc.Customer.SellItem))
		return engine.MakeOffer{Price: o.fraction(value, 0.3, 0.9)}, true
	case "sell":
		if len(oc.Inventory) == 0 {
			return nil, false
		}
		line := oc.Inventory[o.rng.Intn(len(oc.Inventory))]
		return engine.SellItem{
			InventoryIndex: line.Index,
			Price:          o.fraction(float64(line.MarketValue), 0.6, 1.2),
		}, true
	case "next":
		return engine.SeeNextCustomer{}, true
	case "lookup":
		if o.catalog == nil || o.catalog.Len() == 0 {
			return nil, false
		}
		return engine.LookupPrice{ItemID: o.catalog.Random(o.rng).ID}, true
	case "day":
		// Closing early with customers still waiting wastes them.
		return engine.GoToNextDay{}, oc.CustomersLeftToday <= 1
	case "inventory":
		return engine.ViewInventory{}, true
	case "money":
		return engine.ViewMoney{}, true
	case "trades":
		return engine.ViewTrades{}, true
	}
	return nil, false
}

func (o *RandomOwner) talkLine(oc engine.OwnerContext) string {
	if len(oc.Inventory) > 0 && o.rng.Intn(2) == 0 {
		line := oc.Inventory[o.rng.Intn(len(oc.Inventory))]
		price := o.fraction(float64(line.MarketValue), 0.7, 1.3)
		return fmt.Sprintf("I could let the %s go for $%d.", line.Item.Name, price)
	}
	if o.rng.Intn(2) == 0 {
		value := float64(catalog.ActualValue(oc.Customer.SellItem))
		return fmt.Sprintf("I can offer you $%d for your %s.", o.fraction(value, 0.4, 0.9), oc.Customer.SellItem.Name)
	}
	return smallTalk[o.rng.Intn(len(smallTalk))]
}

func (o *RandomOwner) fraction(value, lo, hi float64) int {
	return int(math.Max(1, math.Round(value*(lo+o.rng.Float64()*(hi-lo)))))
}
