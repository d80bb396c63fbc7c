package hearts

import (
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
)

const (
	tricksPerRound = 13
	cardsPerPass   = 3
	// RoundPoints is the total penalty value in the deck: 13 hearts, the
	// queen of spades and the ten of diamonds.
	RoundPoints = 36
)

// LegalPlays returns the cards in hand that may be played onto trick.
//
// Leading is free, including hearts before they are broken. A follower must
// follow the lead suit if able. A follower void in the lead suit who still
// holds a penalty card must play one of them.
func LegalPlays(hand cards.Cards, trick cards.Cards) cards.Cards {
	if len(trick) == 0 {
		return hand.Copy()
	}
	leadSuit := trick[0].Suit
	if following := hand.FilterBySuit(leadSuit); len(following) > 0 {
		return following
	}
	if penalties := hand.Filter(cards.Card.IsPenalty); len(penalties) > 0 {
		return penalties
	}
	return hand.Copy()
}

func IsLegalPlay(card cards.Card, hand cards.Cards, trick cards.Cards) bool {
	return LegalPlays(hand, trick).ContainsCard(card)
}

// PassTarget is the seat that seat passes its three cards to.
func PassTarget(seat int) int {
	return (seat + 3) % 4
}

// NextSeat is the seat that plays after seat.
func NextSeat(seat int) int {
	return (seat + 1) % 4
}

// LeaderForDealer is the seat to the dealer's right, who leads the first trick.
func LeaderForDealer(dealer int) int {
	return NextSeat(dealer)
}
