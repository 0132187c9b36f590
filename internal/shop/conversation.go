package shop

import (
	"fmt"
	"strings"
	"time"

	"github.com/talgya/pawnshop/internal/customers"
)

// Outcome is where a conversation ended up.
type Outcome string

const (
	OutcomeOngoing      Outcome = "ongoing"
	OutcomeTradeMade    Outcome = "trade_made"
	OutcomeCustomerLeft Outcome = "customer_left"
)

// Terminal reports whether the outcome can no longer change.
func (o Outcome) Terminal() bool {
	return o != OutcomeOngoing
}

// Sender identifies who said a message.
type Sender string

const (
	SenderOwner    Sender = "owner"
	SenderCustomer Sender = "customer"
)

// Message is one line of a conversation.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
}

// Conversation is the negotiation with one customer on one day.
type Conversation struct {
	ID               string                     `json:"id"`
	CustomerID       string                     `json:"customer_id"`
	CustomerName     string                     `json:"customer_name"`
	Day              int                        `json:"day"`
	InitialOffer     customers.SellOffer        `json:"initial_offer"`
	InitialInterests []customers.BuyingInterest `json:"initial_interests"`
	Messages         []Message                  `json:"messages"`
	Outcome          Outcome                    `json:"outcome"`
	Departed         bool                       `json:"departed"` // Customer walked out; no more turns

	pending bool // An oracle call is in flight
}

func newConversation(c *customers.Customer, day int) *Conversation {
	interests := make([]customers.BuyingInterest, len(c.BuyingInterests))
	copy(interests, c.BuyingInterests)
	return &Conversation{
		ID:               "conv_" + c.ID,
		CustomerID:       c.ID,
		CustomerName:     c.Name,
		Day:              day,
		InitialOffer:     c.SellOffer,
		InitialInterests: interests,
		Messages:         []Message{},
		Outcome:          OutcomeOngoing,
	}
}

func (c *Conversation) say(at time.Time, from Sender, text string) {
	if text == "" {
		return
	}
	c.Messages = append(c.Messages, Message{Timestamp: at, Sender: from, Text: text})
}

// conclude moves an ongoing conversation to a terminal outcome. Terminal
// conversations are left untouched.
func (c *Conversation) conclude(o Outcome) bool {
	if c.Outcome.Terminal() || !o.Terminal() {
		return false
	}
	c.Outcome = o
	return true
}

// Transcript renders the messages one per line.
func (c *Conversation) Transcript() string {
	var b strings.Builder
	for _, m := range c.Messages {
		who := "Owner"
		if m.Sender == SenderCustomer {
			who = c.CustomerName
		}
		fmt.Fprintf(&b, "%s: %s\n", who, m.Text)
	}
	return b.String()
}

// LastCustomerMessage returns the most recent thing the customer said.
func (c *Conversation) LastCustomerMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Sender == SenderCustomer {
			return c.Messages[i].Text
		}
	}
	return ""
}
