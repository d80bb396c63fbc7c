package game

import (
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
)

// NumSeats is the fixed table size.
const NumSeats = 4

// Game is the read-only view handed to reporters with every notification.
type Game interface {
	Id() string
	Phase() GamePhase
	RoundNumber() int
	Scores() [NumSeats]int
}

type GamePhase int8

const (
	Dealing GamePhase = iota
	Passing
	Leading
	Following
	TrickResolved
	RoundEnded
	GameOver
)

func (ph GamePhase) String() string {
	switch ph {
	case Dealing:
		return "Dealing"
	case Passing:
		return "Passing"
	case Leading:
		return "Leading"
	case Following:
		return "Following"
	case TrickResolved:
		return "TrickResolved"
	case RoundEnded:
		return "RoundEnded"
	case GameOver:
		return "GameOver"
	}
	return "unknown"
}

// SelectionKind names what a seat was asked to choose.
type SelectionKind int8

const (
	SelectPass SelectionKind = iota
	SelectCard
)

func (k SelectionKind) String() string {
	if k == SelectPass {
		return "pass"
	}
	return "card"
}

// Report activity back to the observers. Reporters are fire-and-forget:
// they must not block and must not call back into the game's mutators.
type Reporter interface {
	ReportGameInitialized(g Game)
	ReportGameStarted(g Game)
	ReportRoundStarted(g Game, dealer, leader int)
	ReportHandDealt(g Game, seat int, hand cards.Cards)
	ReportHandUpdated(g Game, seat int, hand cards.Cards)
	ReportPassStarted(g Game)
	ReportPassCompleted(g Game, passed [NumSeats]cards.Cards)
	ReportNextTurn(g Game, seat int)
	ReportCardPlayed(g Game, seat int, card cards.Card, trick cards.Cards)
	ReportTrickCompleted(g Game, trick cards.Cards, winner, points int)
	ReportPileCleared(g Game)
	ReportScoresUpdated(g Game, roundPoints, scores [NumSeats]int)
	ReportRoundEnded(g Game, roundPoints [NumSeats]int)
	ReportGameFinished(g Game, loser int)
	ReportSelectionFailed(g Game, seat int, kind SelectionKind, err error)
}

// UnimplementedReporter ignores every notification. Embed it to handle a subset.
type UnimplementedReporter struct{}

func (UnimplementedReporter) ReportGameInitialized(Game) {}
func (UnimplementedReporter) ReportGameStarted(Game) {}
func (UnimplementedReporter) ReportRoundStarted(Game, int, int) {}
func (UnimplementedReporter) ReportHandDealt(Game, int, cards.Cards) {}
func (UnimplementedReporter) ReportHandUpdated(Game, int, cards.Cards) {}
func (UnimplementedReporter) ReportPassStarted(Game) {}
func (UnimplementedReporter) ReportPassCompleted(Game, [NumSeats]cards.Cards) {}
func (UnimplementedReporter) ReportNextTurn(Game, int) {}
func (UnimplementedReporter) ReportCardPlayed(Game, int, cards.Card, cards.Cards) {}
func (UnimplementedReporter) ReportTrickCompleted(Game, cards.Cards, int, int) {}
func (UnimplementedReporter) ReportPileCleared(Game) {}
func (UnimplementedReporter) ReportScoresUpdated(Game, [NumSeats]int, [NumSeats]int) {}
func (UnimplementedReporter) ReportRoundEnded(Game, [NumSeats]int) {}
func (UnimplementedReporter) ReportGameFinished(Game, int) {}
func (UnimplementedReporter) ReportSelectionFailed(Game, int, SelectionKind, error) {}
