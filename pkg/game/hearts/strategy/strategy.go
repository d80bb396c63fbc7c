// Package strategy chooses which cards an automated seat passes, leads and
// follows with. Strategies see only their own hand and a context built fresh
// for every decision; cards cross this boundary as tokens such as "Qs".
package strategy

import (
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"golang.org/x/exp/slices"
)

const numSeats = 4

// Hand holds card tokens grouped by suit (indexed by cards.Suit), each
// group ascending by rank.
type Hand [4][]string

// NewHand encodes cs.
func NewHand(cs cards.Cards) Hand {
	var h Hand
	bySuit := cs.SplitBySuit()
	for _, suit := range cards.Suits {
		group := bySuit[suit].Copy()
		group.Sort()
		h[suit] = group.Strings()
	}
	return h
}

// Cards decodes the hand, skipping malformed tokens.
func (h Hand) Cards() cards.Cards {
	var cs cards.Cards
	for _, group := range h {
		cs = append(cs, parseTokens(group)...)
	}
	return cs
}

// Contains reports whether token names a card in the hand.
func (h Hand) Contains(token string) bool {
	c, err := cards.ParseCard(token)
	if err != nil {
		return false
	}
	return slices.Contains(h[c.Suit], token)
}

func (h Hand) Size() int {
	n := 0
	for _, group := range h {
		n += len(group)
	}
	return n
}

func parseTokens(tokens []string) cards.Cards {
	cs := cards.Cards{}
	for _, t := range tokens {
		if c, err := cards.ParseCard(t); err == nil {
			cs = append(cs, c)
		}
	}
	return cs
}

// Play is one card of the trick in progress.
type Play struct {
	Seat int
	Card string
}

// TrickPhase classifies the trick a decision is made in.
type TrickPhase int8

const (
	FirstTrick TrickPhase = iota
	Early
	// QueenTrick is a spade trick while the queen of spades is still out in
	// someone else's hand, or any trick the queen has already fallen into.
	QueenTrick
	Late
)

const earlyTricks = 4

func (p TrickPhase) String() string {
	switch p {
	case FirstTrick:
		return "first"
	case Early:
		return "early"
	case QueenTrick:
		return "queen"
	case Late:
		return "late"
	}
	return "unknown"
}

// ClassifyTrick derives the phase of the trick in progress.
func ClassifyTrick(tricksPlayed int, trick cards.Cards, queenPlayed, queenHeld bool) TrickPhase {
	if tricksPlayed == 0 {
		return FirstTrick
	}
	if trick.ContainsCard(cards.QueenOfSpades) {
		return QueenTrick
	}
	if len(trick) > 0 && trick[0].Suit == cards.Spades && !queenPlayed && !queenHeld {
		return QueenTrick
	}
	if tricksPlayed < earlyTricks {
		return Early
	}
	return Late
}

// PassContext frames a passing decision.
type PassContext struct {
	Seat   int
	Target int
	Scores [numSeats]int
}

// LeadContext frames a decision that opens a trick.
type LeadContext struct {
	Seat        int
	Scores      [numSeats]int
	RoundPoints [numSeats]int
	// Remaining is the number of unplayed cards per suit, own cards included.
	Remaining [4]int
	// RankPositions gives, per suit, the 1-based rank of each own card (in
	// Hand order) among the suit's unplayed cards.
	RankPositions [4][]int
	// LikelyHolders lists, per suit, the other seats not known to be void.
	LikelyHolders [4][]int
	// PenaltyFree marks seats proven to hold neither penalty card.
	PenaltyFree       [numSeats]bool
	QueenHeld         bool
	TenHeld           bool
	Phase             TrickPhase
	HeartsBroken      bool
	QueenPlayed       bool
	TenPlayed         bool
	TricksPlayed      int
	FirstVoidPosition int
	Legal             []string
}

// FollowContext frames a decision on a trick already led.
type FollowContext struct {
	LeadContext
	LeadSuit cards.Suit
	// HighestInLead is the highest lead-suit card in the trick so far.
	HighestInLead string
	TrickPoints   int
	Trick         []Play
}

// Strategy is implemented by every decision engine. Implementations must
// not retain or modify their arguments. ChoosePass returns three distinct
// tokens from hand; ChooseLead and ChooseFollow return one token of Legal.
type Strategy interface {
	ChoosePass(hand Hand, ctx PassContext) []string
	ChooseLead(hand Hand, ctx LeadContext) string
	ChooseFollow(hand Hand, ctx FollowContext) string
}

// Partner is the seat across the table.
func Partner(seat int) int {
	return (seat + 2) % numSeats
}

// currentWinner is the seat holding the trick so far, or -1 for an empty trick.
func (ctx FollowContext) currentWinner() int {
	winner := -1
	var best cards.Card
	for _, p := range ctx.Trick {
		c, err := cards.ParseCard(p.Card)
		if err != nil || c.Suit != ctx.LeadSuit {
			continue
		}
		if winner < 0 || c.Value > best.Value {
			winner, best = p.Seat, c
		}
	}
	return winner
}

// voidFollower reports whether a seat still to play is known void in suit
// and may still hold a penalty card.
func (ctx FollowContext) voidFollower(suit cards.Suit) bool {
	for i := 1; i < numSeats-len(ctx.Trick); i++ {
		seat := (ctx.Seat + i) % numSeats
		if !ctx.PenaltyFree[seat] && !slices.Contains(ctx.LikelyHolders[suit], seat) {
			return true
		}
	}
	return false
}

func (ctx FollowContext) lastToPlay() bool {
	return len(ctx.Trick) == numSeats-1
}
