package hearts

import (
	"testing"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/stretchr/testify/assert"
)

// playTrick records a whole trick, seat after seat from leader.
func playTrick(t *CardTracker, leader int, cs cards.Cards) {
	var sofar cards.Cards
	for i, c := range cs {
		t.RecordCardPlayed(c, (leader+i)%4, sofar)
		sofar = append(sofar, c)
	}
	t.EndTrick()
}

func TestTrackerRecordsVoidsAndFlags(t *testing.T) {
	tr := NewCardTracker()
	playTrick(tr, 0, mustParse(t, "5c 9c 3h Kc"))

	s := tr.State()
	assert.True(t, s.IsPlayed(cards.C5c))
	assert.True(t, s.IsPlayed(cards.C3h))
	assert.False(t, s.IsPlayed(cards.C4c))
	assert.True(t, s.HeartsBroken)
	assert.False(t, s.QueenPlayed)
	assert.True(t, s.IsVoid(2, cards.Clubs))
	assert.False(t, s.IsVoid(1, cards.Clubs))
	assert.True(t, s.PenaltyFree[2])
	assert.Equal(t, 3, s.FirstTrickVoidPosition)
	assert.Equal(t, 1, s.TricksPlayed)
	assert.Equal(t, [4]int{12, 13, 13, 10}, s.RemainingCounts())

	playTrick(tr, 3, mustParse(t, "2d Qs Td 4d"))
	s = tr.State()
	assert.True(t, s.QueenPlayed)
	assert.True(t, s.TenPlayed)
	assert.True(t, s.IsVoid(0, cards.Diamonds))
	assert.False(t, s.PenaltyFree[0], "discarding the queen proves nothing")
	assert.Equal(t, 3, s.FirstTrickVoidPosition, "only the first trick sets the position")
	assert.Equal(t, 2, s.TricksPlayed)

	tr.Reset()
	assert.Equal(t, TrackerState{}, tr.State())
}

func TestTrackerStateIsSnapshot(t *testing.T) {
	tr := NewCardTracker()
	before := tr.State()
	playTrick(tr, 0, mustParse(t, "5c 9c 3h Kc"))
	assert.False(t, before.IsPlayed(cards.C5c))
	assert.False(t, before.HeartsBroken)
}

func TestTrackerIgnoresDegenerateInput(t *testing.T) {
	tr := NewCardTracker()
	tr.RecordCardPlayed(cards.C5c, 7, nil)
	tr.RecordCardPlayed(cards.Card{Value: cards.Two, Suit: cards.Suit(9)}, 0, nil)
	assert.Equal(t, TrackerState{}, tr.State())

	s := tr.State()
	assert.False(t, s.IsVoid(-1, cards.Hearts))
	assert.Equal(t, [4][]int{}, s.RelativeRankPositions(nil))
}

func TestRelativeRankPositions(t *testing.T) {
	tr := NewCardTracker()
	playTrick(tr, 0, mustParse(t, "2c 3c 4c Ac"))

	got := tr.State().RelativeRankPositions(mustParse(t, "Kc 5c 2h"))
	assert.Equal(t, []int{1}, got[cards.Hearts])
	assert.Empty(t, got[cards.Spades])
	// Nine clubs remain: 5c is the lowest of them and Kc the highest.
	assert.Equal(t, []int{1, 9}, got[cards.Clubs])
	assert.Equal(t, 9, tr.State().RemainingCounts()[cards.Clubs])
	assert.Equal(t, mustParse(t, "2c 3c 4c Ac"), tr.State().PlayedCards(cards.Clubs))
}

func TestSeatsLikelyHoldingSuit(t *testing.T) {
	tr := NewCardTracker()
	playTrick(tr, 0, mustParse(t, "5c 9c 3h Kc"))

	got := tr.State().SeatsLikelyHoldingSuit(0)
	assert.Equal(t, []int{1, 3}, got[cards.Clubs])
	assert.Equal(t, []int{1, 2, 3}, got[cards.Spades])
	assert.Equal(t, []int{0, 1, 3}, tr.State().SeatsLikelyHoldingSuit(2)[cards.Spades])
	assert.Equal(t, []int{0, 1, 3}, tr.State().SeatsLikelyHoldingSuit(2)[cards.Clubs])
}

func TestSeatsPossiblyHolding(t *testing.T) {
	tr := NewCardTracker()
	// Seat 2 discards a safe heart on a club lead, so it holds no penalty card.
	playTrick(tr, 0, mustParse(t, "5c 9c 3h Kc"))

	s := tr.State()
	assert.Equal(t, []int{1, 3}, s.SeatsPossiblyHolding(0, cards.Cqs))
	assert.Equal(t, []int{1, 2, 3}, s.SeatsPossiblyHolding(0, cards.C7s))
	assert.Equal(t, []int{}, s.SeatsPossiblyHolding(0, cards.C5c))
}
