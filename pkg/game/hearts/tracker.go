package hearts

import (
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
)

// TrackerState is everything publicly knowable about the current round.
// It holds only arrays, so a plain copy is an independent snapshot.
type TrackerState struct {
	// Played has bit v set when value v of the suit has been played.
	Played [4]uint16
	// Voids[seat][suit] is set once the seat failed to follow that suit.
	Voids [game.NumSeats][4]bool
	// PenaltyFree[seat] is set once the seat discarded a safe card while void,
	// which under the forced-penalty rule proves it holds neither penalty card.
	PenaltyFree  [game.NumSeats]bool
	HeartsBroken bool
	QueenPlayed  bool
	TenPlayed    bool
	TricksPlayed int
	// FirstTrickVoidPosition is the 1-based position within the first trick
	// where a seat first failed to follow suit, or 0 if nobody has.
	FirstTrickVoidPosition int
}

// CardTracker is the single writer of the round's TrackerState.
type CardTracker struct {
	state TrackerState
}

func NewCardTracker() *CardTracker {
	return &CardTracker{}
}

// Reset clears all per-round state.
func (t *CardTracker) Reset() {
	t.state = TrackerState{}
}

// State returns a snapshot of the tracker.
func (t *CardTracker) State() TrackerState {
	return t.state
}

// RecordCardPlayed notes that seat played card onto trickSoFar, which holds
// the cards already in the trick before this one.
func (t *CardTracker) RecordCardPlayed(card cards.Card, seat int, trickSoFar cards.Cards) {
	if !card.Valid() || seat < 0 || seat >= game.NumSeats {
		return
	}
	s := &t.state
	s.Played[card.Suit] |= 1 << uint(card.Value)
	switch {
	case card.Suit == cards.Hearts:
		s.HeartsBroken = true
	case card == cards.QueenOfSpades:
		s.QueenPlayed = true
	case card == cards.TenOfDiamonds:
		s.TenPlayed = true
	}
	if len(trickSoFar) == 0 {
		return
	}
	leadSuit := trickSoFar[0].Suit
	if card.Suit == leadSuit || !leadSuit.Valid() {
		return
	}
	s.Voids[seat][leadSuit] = true
	if !card.IsPenalty() {
		s.PenaltyFree[seat] = true
	}
	if s.TricksPlayed == 0 && s.FirstTrickVoidPosition == 0 {
		s.FirstTrickVoidPosition = len(trickSoFar) + 1
	}
}

// EndTrick counts a completed trick.
func (t *CardTracker) EndTrick() {
	t.state.TricksPlayed++
}

func (s TrackerState) IsPlayed(c cards.Card) bool {
	if !c.Valid() {
		return false
	}
	return s.Played[c.Suit]&(1<<uint(c.Value)) != 0
}

func (s TrackerState) IsVoid(seat int, suit cards.Suit) bool {
	if seat < 0 || seat >= game.NumSeats || !suit.Valid() {
		return false
	}
	return s.Voids[seat][suit]
}

// PlayedCount is the number of cards of the suit already played.
func (s TrackerState) PlayedCount(suit cards.Suit) int {
	n := 0
	for b := s.Played[suit]; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// RemainingCounts is, per suit, how many cards have not been played yet.
func (s TrackerState) RemainingCounts() [4]int {
	var counts [4]int
	for _, suit := range cards.Suits {
		counts[suit] = len(cards.Values) - s.PlayedCount(suit)
	}
	return counts
}

// UnplayedValues lists the values of the suit not yet played, ascending.
func (s TrackerState) UnplayedValues(suit cards.Suit) []cards.Value {
	var vs []cards.Value
	for _, v := range cards.Values {
		if !s.IsPlayed(cards.Card{Value: v, Suit: suit}) {
			vs = append(vs, v)
		}
	}
	return vs
}

// PlayedCards lists the cards of the suit already played, ascending.
func (s TrackerState) PlayedCards(suit cards.Suit) cards.Cards {
	var cs cards.Cards
	for _, v := range cards.Values {
		c := cards.Card{Value: v, Suit: suit}
		if s.IsPlayed(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

// RelativeRankPositions gives, for each of the hand's cards grouped by suit in
// ascending order, its 1-based rank among the suit's unplayed cards.
// Position 1 is the lowest card still out.
func (s TrackerState) RelativeRankPositions(hand cards.Cards) [4][]int {
	var positions [4][]int
	bySuit := hand.SplitBySuit()
	for _, suit := range cards.Suits {
		own := bySuit[suit]
		own.Sort()
		for _, c := range own {
			pos := 1
			for _, v := range s.UnplayedValues(suit) {
				if v < c.Value {
					pos++
				}
			}
			positions[suit] = append(positions[suit], pos)
		}
	}
	return positions
}

// SeatsLikelyHoldingSuit lists, per suit, the other seats not known to be void.
func (s TrackerState) SeatsLikelyHoldingSuit(ownSeat int) [4][]int {
	var seats [4][]int
	for _, suit := range cards.Suits {
		seats[suit] = []int{}
		for seat := 0; seat < game.NumSeats; seat++ {
			if seat == ownSeat || s.Voids[seat][suit] {
				continue
			}
			seats[suit] = append(seats[suit], seat)
		}
	}
	return seats
}

// SeatsPossiblyHolding lists the other seats that could still hold the card,
// combining void inference with the forced-penalty inference. The caller's
// own hand is not consulted.
func (s TrackerState) SeatsPossiblyHolding(ownSeat int, c cards.Card) []int {
	if s.IsPlayed(c) {
		return []int{}
	}
	seats := []int{}
	for _, seat := range s.SeatsLikelyHoldingSuit(ownSeat)[c.Suit] {
		if c.IsPenalty() && s.PenaltyFree[seat] {
			continue
		}
		seats = append(seats, seat)
	}
	return seats
}
