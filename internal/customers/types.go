// Package customers provides the customer data model and the daily roster
// generator.
package customers

import (
	"github.com/talgya/pawnshop/internal/catalog"
)

// Personality colors how a customer talks. It never changes engine rules.
type Personality string

const (
	PersonalityPatient    Personality = "patient"
	PersonalityAggressive Personality = "aggressive"
	PersonalityReasonable Personality = "reasonable"
	PersonalityTouchy     Personality = "touchy"
	PersonalityShrewd     Personality = "shrewd"
)

// Personalities is the fixed trait set drawn from during generation.
var Personalities = []Personality{
	PersonalityPatient,
	PersonalityAggressive,
	PersonalityReasonable,
	PersonalityTouchy,
	PersonalityShrewd,
}

// SellOffer is the item a customer brought in and their private price range.
// 0 < MinPrice <= MaxPrice.
type SellOffer struct {
	Item     catalog.Item `json:"item"`
	MinPrice int          `json:"min_price"` // Lowest they'll accept (hidden from the owner)
	MaxPrice int          `json:"max_price"` // What they hope to get
}

// BuyingInterest is a catalog item the customer would buy, with a secret ceiling.
type BuyingInterest struct {
	ItemID   string `json:"item_id"`
	MaxPrice int    `json:"max_price"`
}

// Customer is one visitor to the shop. Immutable for the day it was generated.
type Customer struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Personality     Personality      `json:"personality,omitempty"`
	SellOffer       SellOffer        `json:"sell_offer"`
	BuyingInterests []BuyingInterest `json:"buying_interests"`
}

// InterestIn returns the customer's buying interest for an item, if any.
func (c *Customer) InterestIn(itemID string) (BuyingInterest, bool) {
	for _, in := range c.BuyingInterests {
		if in.ItemID == itemID {
			return in, true
		}
	}
	return BuyingInterest{}, false
}

// IsInterestedIn reports whether the customer would consider buying the item.
func (c *Customer) IsInterestedIn(itemID string) bool {
	_, ok := c.InterestIn(itemID)
	return ok
}

// IsOfferAcceptable reports whether an offer for the customer's item meets their minimum.
func (c *Customer) IsOfferAcceptable(price int) bool {
	return price >= c.SellOffer.MinPrice
}

// PriceRange returns the customer's private min/max for the item they sell.
func (c *Customer) PriceRange() (min, max int) {
	return c.SellOffer.MinPrice, c.SellOffer.MaxPrice
}

// ItemDescription describes the item the customer wants to sell.
func (c *Customer) ItemDescription() string {
	return catalog.Describe(c.SellOffer.Item)
}
