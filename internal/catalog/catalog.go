// Package catalog provides the read-only table of items customers bring into
// the shop, their condition grades, and market-value lookup.
package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Condition grades an item's wear. Ordered poor < fair < good < excellent.
type Condition uint8

const (
	ConditionPoor Condition = iota
	ConditionFair
	ConditionGood
	ConditionExcellent
)

// ConditionInfo describes a condition grade.
type ConditionInfo struct {
	Label      string
	Multiplier float64 // Fraction of base value, in (0, 1]
}

// ConditionTable maps each condition to its label and value multiplier.
// Multipliers increase strictly along the condition ordering.
var ConditionTable = map[Condition]ConditionInfo{
	ConditionPoor:      {Label: "poor", Multiplier: 0.4},
	ConditionFair:      {Label: "fair", Multiplier: 0.6},
	ConditionGood:      {Label: "good", Multiplier: 0.8},
	ConditionExcellent: {Label: "excellent", Multiplier: 1.0},
}

// Conditions lists every condition in ascending order.
var Conditions = []Condition{ConditionPoor, ConditionFair, ConditionGood, ConditionExcellent}

func (c Condition) String() string {
	if info, ok := ConditionTable[c]; ok {
		return info.Label
	}
	return fmt.Sprintf("condition(%d)", uint8(c))
}

// MarshalText renders the condition by label so JSON output stays readable.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a condition label.
func (c *Condition) UnmarshalText(text []byte) error {
	label := strings.ToLower(string(text))
	for cond, info := range ConditionTable {
		if info.Label == label {
			*c = cond
			return nil
		}
	}
	return fmt.Errorf("unknown condition %q", text)
}

// Multiplier returns the value multiplier for the condition (0 if unknown).
func (c Condition) Multiplier() float64 {
	return ConditionTable[c].Multiplier
}

// Category groups items for browsing and prompts.
type Category string

const (
	CategoryJewelry     Category = "jewelry"
	CategoryElectronics Category = "electronics"
	CategoryTools       Category = "tools"
	CategoryMusic       Category = "musical_instruments"
	CategoryWatches     Category = "watches"
	CategoryCollectible Category = "collectibles"
	CategorySporting    Category = "sporting_goods"
	CategoryCameras     Category = "cameras"
	CategoryArt         Category = "art"
	CategoryAntiques    Category = "antiques"
)

// Item is an immutable catalog entry.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	BaseValue   int       `json:"base_value"` // Dollars, > 0
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
}

// ActualValue is the market value of an item: base value scaled by condition,
// rounded to whole dollars.
func ActualValue(item Item) int {
	return int(math.Round(float64(item.BaseValue) * item.Condition.Multiplier()))
}

// Describe returns "Name (condition) - description".
func Describe(item Item) string {
	return fmt.Sprintf("%s (%s) - %s", item.Name, item.Condition, item.Description)
}

// Catalog is a read-only item table with an ID index.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalog from the given items. Later duplicates of an ID are ignored.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Default returns the built-in pawn shop catalog.
func Default() *Catalog {
	return New(defaultItems)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of all items in table order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemByID looks up an item. The boolean is false when the ID is unknown.
func (c *Catalog) ItemByID(id string) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// ItemByName finds an item by case-insensitive name.
func (c *Catalog) ItemByName(name string) (Item, bool) {
	name = strings.TrimSpace(name)
	for _, it := range c.items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return Item{}, false
}

// Random draws one item uniformly.
func (c *Catalog) Random(rng *rand.Rand) Item {
	return c.items[rng.Intn(len(c.items))]
}

// RandomItems draws n distinct items. n is clamped to [0, Len()].
func (c *Catalog) RandomItems(rng *rand.Rand, n int) []Item {
	if n <= 0 {
		return nil
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	perm := rng.Perm(len(c.items))
	out := make([]Item, n)
	for i := 0; i < n; i++ {
		out[i] = c.items[perm[i]]
	}
	return out
}

// ByCategory returns every item in the category.
func (c *Catalog) ByCategory(cat Category) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}
