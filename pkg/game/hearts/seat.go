package hearts

import (
	"context"
	"errors"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
)

// Seat is the capability every player at the table provides. Bots answer
// synchronously; humans suspend until their input arrives or ctx expires.
// Requests carry copies, so a seat cannot reach the table's own state.
type Seat interface {
	RequestPass(ctx context.Context, req PassRequest) (cards.Cards, error)
	RequestCard(ctx context.Context, req TurnRequest) (cards.Card, error)
}

// PassRequest asks a seat for the three cards it gives away.
type PassRequest struct {
	Seat   int
	Target int
	Round  int
	Hand   cards.Cards
	Scores [game.NumSeats]int
}

// TurnRequest asks a seat for one card of LegalPlays.
type TurnRequest struct {
	Seat       int
	Round      int
	Hand       cards.Cards
	LegalPlays cards.Cards
	Trick      *cards.Trick
	Tracker    TrackerState
	Scores     [game.NumSeats]int
	// RoundPoints are the points each seat has taken so far this round.
	RoundPoints [game.NumSeats]int
}

// Leading reports whether the request is for the first card of a trick.
func (r TurnRequest) Leading() bool {
	return r.Trick == nil || r.Trick.Size() == 0
}

var (
	ErrSeatCount        = errors.New("hearts needs exactly four seats")
	ErrMissingSeat      = errors.New("seat is nil")
	ErrNotInHand        = errors.New("card is not in hand")
	ErrIllegalPlay      = errors.New("card is not a legal play")
	ErrBadPass          = errors.New("pass must be three distinct cards from hand")
	ErrGameFinished     = errors.New("game is over")
	// ErrSelectionTimeout marks a seat that did not answer within DecisionTimeout.
	ErrSelectionTimeout = errors.New("selection timed out")
)
