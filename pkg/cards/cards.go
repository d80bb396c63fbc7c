package cards

import (
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

type Cards []Card

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// MakeDeck returns the full deck in canonical order.
func MakeDeck() Cards {
	d := make(Cards, 0, DeckSize)
	for _, s := range Suits {
		for _, v := range Values {
			d = append(d, Card{v, s})
		}
	}
	return d
}

// Deal shuffles a fresh deck and deals it round-robin into numHands sorted hands.
func Deal(numHands int, rng *rand.Rand) []Cards {
	d := MakeDeck()
	d.Shuffle(rng)
	hs := make([]Cards, numHands)
	for i, c := range d {
		hs[i%numHands] = append(hs[i%numHands], c)
	}
	for _, h := range hs {
		h.Sort()
	}
	return hs
}

// Shuffle permutes the cards uniformly. A nil rng uses the global source.
func (cs Cards) Shuffle(rng *rand.Rand) {
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
}

func (cs Cards) Copy() Cards {
	return append(make(Cards, 0, len(cs)), cs...)
}

func (cs Cards) Sort() {
	sort.Slice(cs, func(i, j int) bool { return cs[i].LessThan(cs[j]) })
}

// Equals compares as sets, ignoring order.
func (cs Cards) Equals(other Cards) bool {
	if len(cs) != len(other) {
		return false
	}
	a, b := cs.Copy(), other.Copy()
	a.Sort()
	b.Sort()
	return slices.Equal(a, b)
}

func (cs Cards) Contains(match func(Card) bool) bool {
	return slices.IndexFunc(cs, match) >= 0
}

func (cs Cards) ContainsCard(c Card) bool {
	return slices.Contains(cs, c)
}

func (cs Cards) ContainsSuit(s Suit) bool {
	return cs.Contains(func(c Card) bool { return c.Suit == s })
}

func (cs Cards) ContainsAny(other ...Card) bool {
	return slices.IndexFunc(other, cs.ContainsCard) >= 0
}

func (cs Cards) Filter(match func(c Card) bool) Cards {
	var filtered Cards
	for _, c := range cs {
		if match(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (cs Cards) FilterBySuit(suits ...Suit) Cards {
	return cs.Filter(func(c Card) bool { return slices.Contains(suits, c.Suit) })
}

// Without returns a new slice holding cs minus every card in other.
func (cs Cards) Without(other Cards) Cards {
	return cs.Filter(func(c Card) bool { return !other.ContainsCard(c) })
}

// Remove returns cs without c. The backing array is reused.
func (cs Cards) Remove(c Card) Cards {
	if i := slices.Index(cs, c); i >= 0 {
		return append(cs[:i], cs[i+1:]...)
	}
	return cs
}

// SplitBySuit groups the cards by suit, keeping the original order in each group.
func (cs Cards) SplitBySuit() [4]Cards {
	var bySuit [4]Cards
	for _, c := range cs {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	return bySuit
}

// Points is the total penalty value of the cards.
func (cs Cards) Points() int {
	total := 0
	for _, c := range cs {
		total += c.PenaltyValue()
	}
	return total
}

// Lowest and Highest compare by value only. Both panic on an empty list;
// callers check length first.
func (cs Cards) Lowest() Card {
	return cs.extreme(func(a, b Card) bool { return a.Value < b.Value })
}

func (cs Cards) Highest() Card {
	return cs.extreme(func(a, b Card) bool { return a.Value > b.Value })
}

func (cs Cards) extreme(better func(a, b Card) bool) Card {
	if len(cs) == 0 {
		panic("no extreme card in an empty list")
	}
	best := cs[0]
	for _, c := range cs[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best
}

// Strings returns the card tokens. It is never nil.
func (cs Cards) Strings() []string {
	tokens := make([]string, 0, len(cs))
	for _, c := range cs {
		tokens = append(tokens, c.String())
	}
	return tokens
}

func (cs Cards) String() string {
	return strings.Join(cs.Strings(), " ")
}

// HandString shows the cards sorted and grouped by suit.
func (cs Cards) HandString() string {
	var groups []string
	for _, scs := range cs.SplitBySuit() {
		if len(scs) > 0 {
			scs.Sort()
			groups = append(groups, scs.String())
		}
	}
	return strings.Join(groups, "   ")
}

func ParseCards(tokens []string) (Cards, error) {
	var cs Cards
	for _, t := range tokens {
		c, err := ParseCard(t)
		if err != nil {
			return Cards{}, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}
