package agents

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pawnshop/internal/catalog"
	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/shop"
)

func customerCtx(msg string) shop.CustomerContext {
	return shop.CustomerContext{
		CustomerName: "Alice",
		Personality:  customers.PersonalityReasonable,
		SellItem:     catalog.Item{ID: "violin", Name: "Violin", Description: "with case"},
		MinPrice:     100,
		MaxPrice:     200,
		Interests:    []shop.InterestView{{ItemID: "drone", Item: "Camera Drone", MaxPrice: 400}},
		OwnerMessage: msg,
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		msg   string
		want  int
		found bool
	}{
		{"I can offer you $150 for that.", 150, true},
		{"How about $ 1,250?", 1250, true},
		{"$80 or $90", 80, true},
		{"What is it?", 0, false},
		{"150 dollars", 0, false},
	}
	for _, tc := range tests {
		got, ok := ExtractPrice(tc.msg)
		assert.Equal(t, tc.found, ok, tc.msg)
		assert.Equal(t, tc.want, got, tc.msg)
	}
}

func TestHaggleAcceptsAtMinimum(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	a, err := h.Respond(context.Background(), customerCtx("I'll give you $100."))
	require.NoError(t, err)
	accept, ok := a.(shop.AcceptSellOffer)
	require.True(t, ok, "got %T", a)
	assert.Equal(t, 100, accept.Price)
}

func TestHaggleCountersLowOffer(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	a, err := h.Respond(context.Background(), customerCtx("How about $90?"))
	require.NoError(t, err)
	refuse, ok := a.(shop.RefuseOffer)
	require.True(t, ok, "got %T", a)

	counter, found := ExtractPrice(refuse.Message)
	require.True(t, found)
	assert.GreaterOrEqual(t, counter, 100)
	assert.LessOrEqual(t, counter, 200)
}

func TestTouchyCustomerLeavesOnLowball(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	cc := customerCtx("$20, take it or leave it.")
	cc.Personality = customers.PersonalityTouchy
	a, err := h.Respond(context.Background(), cc)
	require.NoError(t, err)
	assert.IsType(t, shop.LeaveShop{}, a)
}

func TestHaggleTalksWithoutPrice(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	a, err := h.Respond(context.Background(), customerCtx("Tell me about it."))
	require.NoError(t, err)
	talk, ok := a.(shop.Talk)
	require.True(t, ok)
	assert.Contains(t, talk.Message, "Violin")
	assert.Contains(t, talk.Message, "$200")
}

func TestHaggleBuysFromShelf(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	cc := customerCtx("I could let the Camera Drone go for $350.")
	cc.Shelf = []shop.ShelfItem{{Name: "Camera Drone"}}

	a, err := h.Respond(context.Background(), cc)
	require.NoError(t, err)
	buy, ok := a.(shop.AcceptBuyOffer)
	require.True(t, ok, "got %T", a)
	assert.Equal(t, 350, buy.Price)
	assert.Equal(t, "Camera Drone", buy.ItemName)

	cc.OwnerMessage = "The camera drone is yours for $500."
	a, err = h.Respond(context.Background(), cc)
	require.NoError(t, err)
	assert.IsType(t, shop.RefuseOffer{}, a)
}

func TestHaggleIgnoresItemsNotOnShelf(t *testing.T) {
	h := NewHaggleCustomer(rand.New(rand.NewSource(1)))
	a, err := h.Respond(context.Background(), customerCtx("I could sell you a Camera Drone for $150."))
	require.NoError(t, err)
	// Read as an offer for the customer's own item.
	assert.IsType(t, shop.AcceptSellOffer{}, a)
}

func TestScriptedOwnerExhausts(t *testing.T) {
	o := NewScriptedOwner(engine.ViewMoney{}, engine.SeeNextCustomer{})
	ctx := context.Background()

	a, err := o.Decide(ctx, engine.OwnerContext{Day: 1})
	require.NoError(t, err)
	assert.Equal(t, engine.ViewMoney{}, a)
	assert.Equal(t, 1, o.Remaining())

	a, err = o.Decide(ctx, engine.OwnerContext{Day: 1})
	require.NoError(t, err)
	assert.Equal(t, engine.SeeNextCustomer{}, a)

	_, err = o.Decide(ctx, engine.OwnerContext{Day: 1})
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Len(t, o.Seen(), 3)
}

func TestScriptedCustomerExhausts(t *testing.T) {
	c := NewScriptedCustomer(shop.Talk{Message: "hi"})
	a, err := c.Respond(context.Background(), customerCtx("hello"))
	require.NoError(t, err)
	assert.Equal(t, shop.Talk{Message: "hi"}, a)

	_, err = c.Respond(context.Background(), customerCtx("hello?"))
	assert.ErrorIs(t, err, ErrScriptExhausted)
	require.Len(t, c.Seen(), 2)
	assert.Equal(t, "hello?", c.Seen()[1].OwnerMessage)
}

func TestRandomOwnerRespectsContext(t *testing.T) {
	cat := catalog.Default()
	o := NewRandomOwner(rand.New(rand.NewSource(11)), cat)
	ctx := context.Background()

	a, err := o.Decide(ctx, engine.OwnerContext{Day: 1})
	require.NoError(t, err)
	assert.Equal(t, engine.GoToNextDay{}, a)

	a, err = o.Decide(ctx, engine.OwnerContext{Day: 1, CustomersLeftToday: 2,
		Customer: &engine.CustomerSummary{Departed: true}})
	require.NoError(t, err)
	assert.Equal(t, engine.SeeNextCustomer{}, a)

	item := cat.Items()[0]
	oc := engine.OwnerContext{
		Day:                1,
		Money:              10000,
		CustomersLeftToday: 3,
		Customer:           &engine.CustomerSummary{Name: "Alice", SellItem: item},
	}
	for i := 0; i < 500; i++ {
		a, err := o.Decide(ctx, oc)
		require.NoError(t, err)
		switch act := a.(type) {
		case engine.SellItem:
			t.Fatalf("sell drawn with empty inventory: %+v", act)
		case engine.GoToNextDay:
			t.Fatal("closed the day with customers waiting")
		case engine.MakeOffer:
			assert.Positive(t, act.Price)
			assert.LessOrEqual(t, act.Price, catalog.ActualValue(item))
		case engine.LookupPrice:
			_, ok := cat.ItemByID(act.ItemID)
			assert.True(t, ok)
		}
	}
}
