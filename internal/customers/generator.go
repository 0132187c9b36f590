// Customer generation: builds each day's roster from the catalog.
package customers

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/talgya/pawnshop/internal/catalog"
)

// Pricing fractions of an item's actual value.
const (
	sellMinLow, sellMinHigh   = 0.4, 0.7 // Customer's floor for their own item
	sellMaxLow, sellMaxHigh   = 0.6, 0.9 // Customer's asking price
	interestLow, interestHigh = 0.6, 1.1 // Ceiling for items they'd buy
)

var names = []string{
	"Alice Johnson", "Bob Miller", "Carol Davis", "David Wilson", "Emma Brown",
	"Frank Garcia", "Grace Martinez", "Henry Lopez", "Ivy Anderson", "Jack Taylor",
	"Kate Thomas", "Liam Moore", "Maya Jackson", "Noah White", "Olivia Harris",
	"Paul Clark", "Quinn Lewis", "Ruby Walker", "Sam Hall", "Tina Allen",
	"Uma Young", "Victor King", "Wendy Wright", "Xavier Scott", "Yara Green",
	"Zoe Adams", "Alex Baker", "Blair Cooper", "Casey Reed", "Drew Morgan",
}

// Config controls roster size and buying-interest count.
type Config struct {
	PerDay       int // Customers per day
	MinInterests int // Buying interests per customer, inclusive range
	MaxInterests int
}

// DefaultConfig returns five customers a day with fifteen interests each.
func DefaultConfig() Config {
	return Config{PerDay: 5, MinInterests: 15, MaxInterests: 15}
}

// Generator creates daily customer rosters.
type Generator struct {
	cfg     Config
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewGenerator creates a generator drawing from the catalog with the given randomness.
func NewGenerator(cfg Config, cat *catalog.Catalog, rng *rand.Rand) *Generator {
	if cfg.PerDay < 0 {
		cfg.PerDay = 0
	}
	if cfg.MinInterests < 0 {
		cfg.MinInterests = 0
	}
	if cfg.MaxInterests < cfg.MinInterests {
		cfg.MaxInterests = cfg.MinInterests
	}
	return &Generator{cfg: cfg, catalog: cat, rng: rng}
}

// Generate returns the roster for a day. Any day number is accepted and
// embedded verbatim in customer IDs.
func (g *Generator) Generate(day int) []Customer {
	roster := make([]Customer, 0, g.cfg.PerDay)
	for i := 0; i < g.cfg.PerDay; i++ {
		roster = append(roster, g.generateOne(day, i))
	}
	return roster
}

func (g *Generator) generateOne(day, index int) Customer {
	return Customer{
		ID:              fmt.Sprintf("day_%d_customer_%d", day, index+1),
		Name:            names[g.rng.Intn(len(names))],
		Personality:     Personalities[g.rng.Intn(len(Personalities))],
		SellOffer:       g.sellOffer(),
		BuyingInterests: g.buyingInterests(),
	}
}

func (g *Generator) sellOffer() SellOffer {
	item := g.catalog.Random(g.rng)
	value := float64(catalog.ActualValue(item))

	maxPrice := priceAt(value, g.between(sellMaxLow, sellMaxHigh))
	minPrice := priceAt(value, g.between(sellMinLow, sellMinHigh))
	if minPrice > maxPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}

	return SellOffer{Item: item, MinPrice: minPrice, MaxPrice: maxPrice}
}

func (g *Generator) buyingInterests() []BuyingInterest {
	count := g.cfg.MinInterests
	if span := g.cfg.MaxInterests - g.cfg.MinInterests; span > 0 {
		count += g.rng.Intn(span + 1)
	}

	items := g.catalog.RandomItems(g.rng, count)
	interests := make([]BuyingInterest, 0, len(items))
	for _, it := range items {
		value := float64(catalog.ActualValue(it))
		interests = append(interests, BuyingInterest{
			ItemID:   it.ID,
			MaxPrice: priceAt(value, g.between(interestLow, interestHigh)),
		})
	}
	return interests
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// priceAt rounds value*frac to whole dollars, never below 1.
func priceAt(value, frac float64) int {
	p := int(math.Round(value * frac))
	if p < 1 {
		p = 1
	}
	return p
}
