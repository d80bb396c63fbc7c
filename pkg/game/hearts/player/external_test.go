package player

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalSeatResolve(t *testing.T) {
	seat := NewExternalSeat(nil)
	req := turnRequest(t, 2, "2h Qs 3s", "Ks")
	go func() {
		r := <-seat.Requests()
		assert.Equal(t, game.SelectCard, r.Kind)
		assert.Equal(t, 1, r.Count)
		assert.Equal(t, mustParse(t, "Qs 3s"), r.Legal)
		assert.Equal(t, mustParse(t, "Ks"), r.Trick)
		assert.Empty(t, r.Suggested)
		pending, ok := seat.Pending()
		assert.True(t, ok)
		assert.Equal(t, r.Id, pending.Id)
		assert.NoError(t, seat.Resolve(r.Id, cards.Cards{cards.C3s}))
	}()

	got, err := seat.RequestCard(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, cards.C3s, got)
	_, ok := seat.Pending()
	assert.False(t, ok)
}

func TestExternalSeatRejectsSecondRequest(t *testing.T) {
	seat := NewExternalSeat(nil)
	done := make(chan error, 1)
	go func() {
		_, err := seat.RequestCard(context.Background(), turnRequest(t, 0, "2h 3h"))
		done <- err
	}()
	r := <-seat.Requests()

	_, err := seat.RequestPass(context.Background(), hearts.PassRequest{Hand: mustParse(t, "2h 3h 4h")})
	assert.ErrorIs(t, err, ErrRequestPending)

	require.NoError(t, seat.Resolve(r.Id, cards.Cards{cards.C2h}))
	assert.NoError(t, <-done)
}

func TestExternalSeatCancel(t *testing.T) {
	seat := NewExternalSeat(nil)
	go func() {
		r := <-seat.Requests()
		assert.ErrorIs(t, seat.Resolve("not-an-id", nil), ErrUnknownRequest)
		assert.NoError(t, seat.Cancel(r.Id))
		assert.ErrorIs(t, seat.Cancel(r.Id), ErrUnknownRequest)
	}()
	_, err := seat.RequestPass(context.Background(), hearts.PassRequest{Hand: mustParse(t, "2h 3h 4h 5h")})
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestExternalSeatTimeout(t *testing.T) {
	seat := NewExternalSeat(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := seat.RequestCard(ctx, turnRequest(t, 0, "2h 3h"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	stale := <-seat.Requests()
	assert.ErrorIs(t, seat.Resolve(stale.Id, cards.Cards{cards.C2h}), ErrUnknownRequest)
	_, ok := seat.Pending()
	assert.False(t, ok)
}

func TestExternalSeatExpiredRequestFreesSeat(t *testing.T) {
	seat := NewExternalSeat(nil)
	ctx, cancel := context.WithCancel(context.Background())
	expired, err := seat.begin(ctx, &Request{Seat: 0, Kind: game.SelectPass})
	require.NoError(t, err)
	// The caller has seen its deadline but has not yet cleaned up.
	cancel()
	_, ok := seat.Pending()
	assert.False(t, ok)
	assert.ErrorIs(t, seat.Resolve(expired.id, mustParse(t, "2h 3h 4h")), ErrUnknownRequest)

	go func() {
		assert.Eventually(t, func() bool { _, ok := seat.Pending(); return ok }, time.Second, time.Millisecond)
		r := <-seat.Requests()
		assert.Equal(t, game.SelectCard, r.Kind)
		assert.NoError(t, seat.Resolve(r.Id, cards.Cards{cards.C3h}))
	}()
	got, err := seat.RequestCard(context.Background(), turnRequest(t, 0, "2h 3h"))
	require.NoError(t, err)
	assert.Equal(t, cards.C3h, got)

	seat.abandon(expired)
	_, ok = seat.Pending()
	assert.False(t, ok)
}

func TestExternalSeatQueuesOnlyNewestRequest(t *testing.T) {
	seat := NewExternalSeat(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := seat.RequestPass(ctx, hearts.PassRequest{Hand: mustParse(t, "2h 3h 4h")})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	done := make(chan error, 1)
	go func() {
		_, err := seat.RequestCard(context.Background(), turnRequest(t, 0, "2h 3h"))
		done <- err
	}()
	require.Eventually(t, func() bool { _, ok := seat.Pending(); return ok }, time.Second, time.Millisecond)
	r := <-seat.Requests()
	assert.Equal(t, game.SelectCard, r.Kind)
	assert.Empty(t, seat.requests)
	require.NoError(t, seat.Resolve(r.Id, cards.Cards{cards.C2h}))
	assert.NoError(t, <-done)
}

// failures counts selection failures per seat and kind.
type failures struct {
	game.UnimplementedReporter
	mu   sync.Mutex
	errs map[game.SelectionKind][]error
}

func (f *failures) ReportSelectionFailed(g game.Game, seat int, kind game.SelectionKind, err error) {
	if seat != 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[kind] = append(f.errs[kind], err)
}

func TestExternalSeatPlaysAfterPassTimeout(t *testing.T) {
	seat := NewExternalSeat(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			select {
			case r := <-seat.Requests():
				// Passes are left to time out; cards are answered at once.
				if r.Kind == game.SelectCard {
					_ = seat.Resolve(r.Id, r.Legal[:1])
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log, _ := test.NewNullLogger()
	seats := []hearts.Seat{seat}
	for i := 1; i < 4; i++ {
		seats = append(seats, NewBotSeat(strategy.Basic(), log))
	}
	f := &failures{errs: map[game.SelectionKind][]error{}}
	cfg := hearts.Config{DecisionTimeout: 50 * time.Millisecond, Rand: rand.New(rand.NewSource(4)), Log: log}
	g, err := hearts.NewGame(seats, f, cfg)
	require.NoError(t, err)
	_, err = g.PlayRound(context.Background())
	require.NoError(t, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.errs[game.SelectPass], 1)
	assert.ErrorIs(t, f.errs[game.SelectPass][0], hearts.ErrSelectionTimeout)
	assert.Empty(t, f.errs[game.SelectCard])
}

func TestExternalSeatWrongCount(t *testing.T) {
	seat := NewExternalSeat(nil)
	go func() {
		r := <-seat.Requests()
		assert.NoError(t, seat.Resolve(r.Id, mustParse(t, "2h 3h")))
	}()
	_, err := seat.RequestCard(context.Background(), turnRequest(t, 0, "2h 3h"))
	assert.ErrorIs(t, err, hearts.ErrIllegalPlay)
}

func TestExternalSeatSuggests(t *testing.T) {
	seat := NewExternalSeat(strategy.Basic())
	go func() {
		r := <-seat.Requests()
		assert.Equal(t, game.SelectPass, r.Kind)
		assert.Equal(t, 3, r.Count)
		assert.Len(t, r.Suggested, 3)
		assert.NoError(t, seat.Resolve(r.Id, r.Suggested))
	}()
	hand := mustParse(t, "Qs Td Ah 2s 3s 2d 3d 4d 2c 3c 4c 5c 6c")
	got, err := seat.RequestPass(context.Background(), hearts.PassRequest{Hand: hand})
	require.NoError(t, err)
	assert.Equal(t, mustParse(t, "Qs Ah Td"), got)
}
