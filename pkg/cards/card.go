package cards

import (
	"fmt"
	"strings"
)

// A card's suit, in canonical hand order.
type Suit int8

const (
	Hearts Suit = iota
	Spades
	Diamonds
	Clubs
)

var Suits = []Suit{Hearts, Spades, Diamonds, Clubs}

const suitLetters = "hsdc"

var suitNames = [...]string{"Hearts", "Spades", "Diamonds", "Clubs"}

func (s Suit) Valid() bool {
	return s >= Hearts && s <= Clubs
}

// String is the suit's token letter.
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return suitLetters[s : s+1]
}

func (s Suit) Name() string {
	if !s.Valid() {
		return "Unknown"
	}
	return suitNames[s]
}

func parseSuit(s string) (Suit, error) {
	if len(s) == 1 {
		if i := strings.Index(suitLetters, strings.ToLower(s)); i >= 0 {
			return Suit(i), nil
		}
	}
	return Clubs, fmt.Errorf("no such suit '%s'", s)
}

// A card's value: 2-9,T,J,Q,K,A.
type Value int8

const (
	Two Value = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

const valueLetters = "23456789TJQKA"

// Ordinal is the comparison value of the rank, 0 for Two through 12 for Ace.
func (v Value) Ordinal() int {
	return int(v)
}

func (v Value) Valid() bool {
	return v >= Two && v <= Ace
}

func (v Value) String() string {
	if !v.Valid() {
		return "?"
	}
	return valueLetters[v : v+1]
}

func parseValue(v string) (Value, error) {
	if len(v) == 1 {
		if i := strings.Index(valueLetters, strings.ToUpper(v)); i >= 0 {
			return Value(i), nil
		}
	}
	return Two, fmt.Errorf("no such value '%s'", v)
}

type Card struct {
	Value
	Suit
}

// String renders the card token, e.g. "Qs" or "Td".
func (c Card) String() string {
	return c.Value.String() + c.Suit.String()
}

func (c Card) Valid() bool {
	return c.Value.Valid() && c.Suit.Valid()
}

// ParseCard reads a card token. Case is ignored.
func ParseCard(c string) (Card, error) {
	if len(c) != 2 {
		return Card{}, fmt.Errorf("can't parse card '%s'", c)
	}
	v, verr := parseValue(c[0:1])
	s, serr := parseSuit(c[1:2])
	if verr != nil || serr != nil {
		return Card{}, fmt.Errorf("can't parse card '%s'", c)
	}
	return Card{v, s}, nil
}

// LessThan orders by suit group, then by value within the suit.
func (c1 Card) LessThan(c2 Card) bool {
	if c1.Suit == c2.Suit {
		return c1.Value < c2.Value
	}
	return c1.Suit < c2.Suit
}

// PenaltyValue is the number of points the card carries: one per heart,
// 13 for the queen of spades and 10 for the ten of diamonds.
func (c Card) PenaltyValue() int {
	switch {
	case c.Suit == Hearts:
		return 1
	case c == Cqs:
		return 13
	case c == Ctd:
		return 10
	}
	return 0
}

// IsPenalty reports whether the card is one of the two big penalty cards.
func (c Card) IsPenalty() bool {
	return c == Cqs || c == Ctd
}
