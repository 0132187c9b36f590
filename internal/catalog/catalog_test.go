package catalog

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	assert.GreaterOrEqual(t, c.Len(), 80)

	ids := make(map[string]bool)
	for _, it := range c.Items() {
		assert.NotEmpty(t, it.ID)
		assert.NotEmpty(t, it.Name)
		assert.NotEmpty(t, it.Category)
		assert.NotEmpty(t, it.Description)
		assert.Positive(t, it.BaseValue, it.ID)
		_, known := ConditionTable[it.Condition]
		assert.True(t, known, "unknown condition on %s", it.ID)
		assert.False(t, ids[it.ID], "duplicate id %s", it.ID)
		ids[it.ID] = true
	}
}

func TestConditionMultipliersOrdered(t *testing.T) {
	prev := 0.0
	for _, cond := range Conditions {
		m := cond.Multiplier()
		assert.Greater(t, m, prev, cond.String())
		assert.LessOrEqual(t, m, 1.0)
		assert.NotEmpty(t, ConditionTable[cond].Label)
		prev = m
	}
}

func TestActualValue(t *testing.T) {
	tests := []struct {
		base int
		cond Condition
		want int
	}{
		{100, ConditionExcellent, 100},
		{100, ConditionPoor, 40},
		{125, ConditionGood, 100},
		{13, ConditionFair, 8}, // 7.8 rounds up
		{11, ConditionFair, 7}, // 6.6 rounds up
	}
	for _, tc := range tests {
		got := ActualValue(Item{BaseValue: tc.base, Condition: tc.cond})
		assert.Equal(t, tc.want, got, "base=%d cond=%s", tc.base, tc.cond)
	}

	item := Default().Items()[0]
	want := int(math.Round(float64(item.BaseValue) * ConditionTable[item.Condition].Multiplier))
	assert.Equal(t, want, ActualValue(item))
}

func TestItemByID(t *testing.T) {
	c := Default()
	it, ok := c.ItemByID("gold_ring_14k")
	require.True(t, ok)
	assert.Equal(t, "14k Gold Ring", it.Name)

	_, ok = c.ItemByID("nonexistent_item_12345")
	assert.False(t, ok)
}

func TestItemByNameIsCaseInsensitive(t *testing.T) {
	it, ok := Default().ItemByName("  electric GUITAR ")
	require.True(t, ok)
	assert.Equal(t, "electric_guitar", it.ID)
}

func TestRandomItemsDistinct(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{5, 10, 15} {
		items := c.RandomItems(rng, n)
		require.Len(t, items, n)
		seen := make(map[string]bool)
		for _, it := range items {
			assert.False(t, seen[it.ID])
			seen[it.ID] = true
		}
	}

	assert.Len(t, c.RandomItems(rng, c.Len()+10), c.Len())
	assert.Empty(t, c.RandomItems(rng, 0))
}

func TestByCategoryAndCategories(t *testing.T) {
	c := Default()
	jewelry := c.ByCategory(CategoryJewelry)
	require.NotEmpty(t, jewelry)
	for _, it := range jewelry {
		assert.Equal(t, CategoryJewelry, it.Category)
	}

	cats := c.Categories()
	seen := make(map[Category]bool)
	for _, cat := range cats {
		assert.False(t, seen[cat])
		seen[cat] = true
	}
	assert.Contains(t, cats, CategoryJewelry)
	assert.Contains(t, cats, CategoryElectronics)
	assert.Contains(t, cats, CategoryTools)
}

func TestNewIgnoresDuplicateIDs(t *testing.T) {
	c := New([]Item{
		{ID: "a", Name: "First", BaseValue: 10},
		{ID: "a", Name: "Second", BaseValue: 20},
	})
	assert.Equal(t, 1, c.Len())
	it, _ := c.ItemByID("a")
	assert.Equal(t, "First", it.Name)
}

func TestDescribe(t *testing.T) {
	it := Item{Name: "Violin", Condition: ConditionGood, Description: "with case"}
	assert.Equal(t, "Violin (good) - with case", Describe(it))
}

func TestConditionJSONRoundTrip(t *testing.T) {
	item := Item{ID: "lamp", Name: "Brass Lamp", BaseValue: 100, Condition: ConditionFair}
	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"condition":"fair"`)

	var back Item
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, item, back)

	var c Condition
	assert.Error(t, c.UnmarshalText([]byte("mint")))
}
