package shop

import (
	"errors"
	"fmt"
	"math/rand"
)

// MakeOffer puts an owner offer for the active customer's item on the record
// and settles it. A refused offer leaves the conversation ongoing with the
// customer's answer appended.
func (s *State) MakeOffer(price int) (Trade, error) {
	c, ok := s.ActiveCustomer()
	if !ok {
		return Trade{}, ErrNoCustomer
	}
	conv := s.ConversationFor(c)
	if conv.Departed {
		return Trade{}, ErrCustomerGone
	}
	conv.say(s.now(), SenderOwner, fmt.Sprintf("I can offer you %s for your %s.", FormatMoney(price), c.SellOffer.Item.Name))

	t, err := s.BuyOffer(price)
	if err != nil {
		conv.say(s.now(), SenderCustomer, refusalText(err))
		return Trade{}, err
	}
	return t, nil
}

// OfferItem puts an owner offer to sell inventory[index] on the record and
// settles it against the customer's willingness to pay.
func (s *State) OfferItem(index, price int, rng *rand.Rand) (Trade, error) {
	c, ok := s.ActiveCustomer()
	if !ok {
		return Trade{}, ErrNoCustomer
	}
	conv := s.ConversationFor(c)
	if conv.Departed {
		return Trade{}, ErrCustomerGone
	}
	name := "that"
	if index >= 0 && index < len(s.Inventory) {
		name = "the " + s.Inventory[index].Item.Name
	}
	conv.say(s.now(), SenderOwner, fmt.Sprintf("I can sell you %s for %s.", name, FormatMoney(price)))

	t, err := s.SellOffer(index, price, rng)
	if err != nil {
		conv.say(s.now(), SenderCustomer, refusalText(err))
		return Trade{}, err
	}
	return t, nil
}

// refusalText is the customer's side of a refused owner offer. Refusals that
// are the shop's own problem get no customer line.
func refusalText(err error) string {
	switch {
	case errors.Is(err, ErrBelowMinimum):
		return "That's too low. I can't part with it for that."
	case errors.Is(err, ErrTooExpensive):
		return "That's more than I want to pay."
	case errors.Is(err, ErrNotInterested):
		return "I'm not really interested in that."
	case errors.Is(err, ErrAlreadySold):
		return "You already bought it from me."
	}
	return ""
}
