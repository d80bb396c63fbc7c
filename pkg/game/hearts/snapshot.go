package hearts

import (
	"encoding/json"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
)

// Snapshot is a deep, serializable copy of the table. Cards are tokens such
// as "Qs", and per-suit arrays are indexed h, s, d, c.
type Snapshot struct {
	GameId       string                  `json:"gameId"`
	Phase        string                  `json:"phase"`
	Round        int                     `json:"round"`
	Dealer       int                     `json:"dealer"`
	Leader       int                     `json:"leader"`
	Scores       [game.NumSeats]int      `json:"scores"`
	RoundPoints  [game.NumSeats]int      `json:"roundPoints"`
	CurrentTrick []PlaySnapshot          `json:"currentTrick"`
	InitialHands [game.NumSeats][]string `json:"initialHands"`
	CurrentHands [game.NumSeats][]string `json:"currentHands"`
	Tracker      TrackerSnapshot         `json:"tracker"`
}

type PlaySnapshot struct {
	Seat int    `json:"seat"`
	Card string `json:"card"`
}

type TrackerSnapshot struct {
	Played                 [4][]string            `json:"played"`
	Voids                  [game.NumSeats][4]bool `json:"voids"`
	PenaltyFree            [game.NumSeats]bool    `json:"penaltyFree"`
	HeartsBroken           bool                   `json:"heartsBroken"`
	QueenPlayed            bool                   `json:"queenPlayed"`
	TenPlayed              bool                   `json:"tenPlayed"`
	TricksPlayed           int                    `json:"tricksPlayed"`
	FirstTrickVoidPosition int                    `json:"firstTrickVoidPosition"`
}

// Snapshot captures the table without side effects. Taking it twice with
// no play in between yields equal values.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Snapshot{
		GameId:       g.id,
		Phase:        g.phase.String(),
		Round:        g.round,
		Dealer:       g.dealer,
		Leader:       g.leader,
		Scores:       g.scores,
		RoundPoints:  g.roundPoints,
		CurrentTrick: []PlaySnapshot{},
		Tracker:      snapshotTracker(g.tracker.State()),
	}
	for _, p := range g.trick.Plays {
		s.CurrentTrick = append(s.CurrentTrick, PlaySnapshot{Seat: p.Seat, Card: p.Card.String()})
	}
	for seat := range g.hands {
		s.InitialHands[seat] = tokens(g.initialHands[seat])
		s.CurrentHands[seat] = tokens(g.hands[seat])
	}
	return s
}

func snapshotTracker(ts TrackerState) TrackerSnapshot {
	s := TrackerSnapshot{
		Voids:                  ts.Voids,
		PenaltyFree:            ts.PenaltyFree,
		HeartsBroken:           ts.HeartsBroken,
		QueenPlayed:            ts.QueenPlayed,
		TenPlayed:              ts.TenPlayed,
		TricksPlayed:           ts.TricksPlayed,
		FirstTrickVoidPosition: ts.FirstTrickVoidPosition,
	}
	for _, suit := range cards.Suits {
		s.Played[suit] = tokens(ts.PlayedCards(suit))
	}
	return s
}

func tokens(cs cards.Cards) []string {
	return cs.Strings()
}

// JSON encodes the snapshot for logs and external observers.
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
