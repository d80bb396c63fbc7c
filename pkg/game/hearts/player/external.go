package player

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
)

var (
	ErrRequestPending = errors.New("a selection request is already pending for this seat")
	ErrUnknownRequest = errors.New("no such pending request")
	ErrCanceled       = errors.New("selection canceled")
)

// Request is one selection an outside collaborator must answer through
// Resolve or Cancel.
type Request struct {
	Id    string
	Seat  int
	Kind  game.SelectionKind
	Count int
	Hand  cards.Cards
	// Legal is the set to choose from: the hand when passing.
	Legal     cards.Cards
	Trick     cards.Cards
	Suggested cards.Cards
}

type reply struct {
	cards cards.Cards
	err   error
}

type pending struct {
	id    string
	ctx   context.Context
	reply chan reply
}

// live reports whether p is still waiting for an answer.
func (p *pending) live() bool {
	return p != nil && p.ctx.Err() == nil
}

// ExternalSeat suspends each request until Resolve, Cancel or the request
// context ends. At most one request is outstanding at a time. A request whose
// context has ended is dead at once, even before its caller returns, so the
// next request is never refused because of it.
type ExternalSeat struct {
	hints    strategy.Strategy
	requests chan Request

	mu      sync.Mutex
	current *pending
	request Request
}

// NewExternalSeat makes a seat for outside input. A non-nil hints strategy
// fills in Request.Suggested.
func NewExternalSeat(hints strategy.Strategy) *ExternalSeat {
	return &ExternalSeat{hints: hints, requests: make(chan Request, 1)}
}

// Requests delivers each new selection request. Only the newest request is
// buffered; a request that timed out unread is dropped when the next begins.
func (s *ExternalSeat) Requests() <-chan Request {
	return s.requests
}

// Pending returns the outstanding request, if any.
func (s *ExternalSeat) Pending() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request, s.current.live()
}

// Resolve answers the pending request id.
func (s *ExternalSeat) Resolve(id string, chosen cards.Cards) error {
	return s.finish(id, reply{cards: chosen.Copy()})
}

// Cancel withdraws the pending request id; the table falls back for it.
func (s *ExternalSeat) Cancel(id string) error {
	return s.finish(id, reply{err: ErrCanceled})
}

func (s *ExternalSeat) finish(id string, r reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.live() || s.current.id != id {
		return fmt.Errorf("%s: %w", id, ErrUnknownRequest)
	}
	s.current.reply <- r
	s.current = nil
	return nil
}

func (s *ExternalSeat) RequestPass(ctx context.Context, req hearts.PassRequest) (cards.Cards, error) {
	r := Request{
		Seat:  req.Seat,
		Kind:  game.SelectPass,
		Count: 3,
		Hand:  req.Hand.Copy(),
		Legal: req.Hand.Copy(),
		Trick: cards.Cards{},
	}
	if s.hints != nil {
		r.Suggested = suggestPass(s.hints, req)
	}
	return s.await(ctx, r)
}

func (s *ExternalSeat) RequestCard(ctx context.Context, req hearts.TurnRequest) (cards.Card, error) {
	r := Request{
		Seat:  req.Seat,
		Kind:  game.SelectCard,
		Count: 1,
		Hand:  req.Hand.Copy(),
		Legal: req.LegalPlays.Copy(),
		Trick: trickCards(req),
	}
	if s.hints != nil {
		if c, ok := suggestCard(s.hints, req); ok {
			r.Suggested = cards.Cards{c}
		}
	}
	chosen, err := s.await(ctx, r)
	if err != nil {
		return cards.Card{}, err
	}
	if len(chosen) != 1 {
		return cards.Card{}, fmt.Errorf("got %d cards: %w", len(chosen), hearts.ErrIllegalPlay)
	}
	return chosen[0], nil
}

func (s *ExternalSeat) await(ctx context.Context, r Request) (cards.Cards, error) {
	p, err := s.begin(ctx, &r)
	if err != nil {
		return nil, err
	}
	defer s.abandon(p)

	select {
	case rep := <-p.reply:
		return rep.cards, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// begin makes r the outstanding request and queues it for the consumer.
func (s *ExternalSeat) begin(ctx context.Context, r *Request) (*pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.live() {
		return nil, fmt.Errorf("seat %d: %w", r.Seat, ErrRequestPending)
	}
	// Drop a request that expired before anyone read it.
	select {
	case <-s.requests:
	default:
	}
	r.Id = uuid.NewString()
	s.current = &pending{id: r.Id, ctx: ctx, reply: make(chan reply, 1)}
	s.request = *r
	// Sends happen only here under mu, so the drained buffer has room.
	s.requests <- *r
	return s.current, nil
}

// abandon clears p if it is still outstanding, so a timed-out request can
// no longer be resolved.
func (s *ExternalSeat) abandon(p *pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == p {
		s.current = nil
	}
}

func suggestPass(hints strategy.Strategy, req hearts.PassRequest) cards.Cards {
	passed, err := NewBotSeat(hints, nil).RequestPass(context.Background(), req)
	if err != nil {
		return nil
	}
	return passed
}

func suggestCard(hints strategy.Strategy, req hearts.TurnRequest) (cards.Card, bool) {
	c, err := NewBotSeat(hints, nil).RequestCard(context.Background(), req)
	return c, err == nil
}
