package hearts

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultScoreLimit      = 100
	DefaultDecisionTimeout = 30 * time.Second
)

// Config parameterizes a game. Zero values take the defaults.
type Config struct {
	// ScoreLimit ends the game once any cumulative score reaches it.
	ScoreLimit int
	// DecisionTimeout bounds every single pass or card request.
	DecisionTimeout time.Duration
	// Rand drives the deal and the first leader. Only the game goroutine uses it.
	Rand *rand.Rand
	Log  logrus.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.ScoreLimit <= 0 {
		c.ScoreLimit = DefaultScoreLimit
	}
	if c.DecisionTimeout <= 0 {
		c.DecisionTimeout = DefaultDecisionTimeout
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	return c
}

// Result is the outcome of a finished game.
type Result struct {
	Loser  int
	Scores [game.NumSeats]int
	Rounds int
}

// Game is the round and trick state machine. It is the only writer of hands,
// the current trick and the scores. Run it from a single goroutine; the
// read accessors and Snapshot may be called from any goroutine.
type Game struct {
	id       string
	cfg      Config
	log      logrus.FieldLogger
	seats    [game.NumSeats]Seat
	reporter game.Reporter

	mu              sync.Mutex
	phase           game.GamePhase
	round           int
	dealer          int
	leader          int
	hands           [game.NumSeats]cards.Cards
	initialHands    [game.NumSeats]cards.Cards
	trick           *cards.Trick
	tracker         *CardTracker
	roundPoints     [game.NumSeats]int
	scores          [game.NumSeats]int
	queenCapturedBy int
	loser           int
}

// NewGame seats four players. A nil reporter discards notifications.
func NewGame(seats []Seat, reporter game.Reporter, cfg Config) (*Game, error) {
	if len(seats) != game.NumSeats {
		return nil, fmt.Errorf("got %d seats: %w", len(seats), ErrSeatCount)
	}
	if reporter == nil {
		reporter = game.UnimplementedReporter{}
	}
	cfg = cfg.withDefaults()
	g := &Game{
		id:              uuid.NewString(),
		cfg:             cfg,
		reporter:        reporter,
		phase:           game.Dealing,
		dealer:          -1,
		leader:          -1,
		trick:           cards.NewTrick(),
		tracker:         NewCardTracker(),
		queenCapturedBy: -1,
		loser:           -1,
	}
	for i, s := range seats {
		if s == nil {
			return nil, fmt.Errorf("seat %d: %w", i, ErrMissingSeat)
		}
		g.seats[i] = s
	}
	g.log = cfg.Log.WithField("game", g.id)
	reporter.ReportGameInitialized(g)
	return g, nil
}

func (g *Game) Id() string {
	return g.id
}

func (g *Game) Phase() game.GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) RoundNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}

func (g *Game) Scores() [game.NumSeats]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scores
}

// Dealer is the current round's dealer, or -1 before the first deal.
func (g *Game) Dealer() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dealer
}

// Run plays rounds until the game is over or ctx is done.
func (g *Game) Run(ctx context.Context) (Result, error) {
	g.reporter.ReportGameStarted(g)
	for {
		over, err := g.PlayRound(ctx)
		if err != nil {
			return g.result(), err
		}
		if over {
			return g.result(), nil
		}
	}
}

func (g *Game) result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Result{Loser: g.loser, Scores: g.scores, Rounds: g.round}
}

// PlayRound deals, passes and plays all thirteen tricks, then scores the round.
// It reports whether the game is over.
func (g *Game) PlayRound(ctx context.Context) (bool, error) {
	if g.Phase() == game.GameOver {
		return true, ErrGameFinished
	}
	g.deal()
	if err := g.passCards(ctx); err != nil {
		return false, err
	}
	for i := 0; i < tricksPerRound; i++ {
		if err := g.playTrick(ctx); err != nil {
			return false, err
		}
	}
	return g.endRound(), nil
}

func (g *Game) deal() {
	g.mu.Lock()
	g.round++
	g.phase = game.Dealing
	g.tracker.Reset()
	g.trick = cards.NewTrick()
	g.roundPoints = [game.NumSeats]int{}
	g.queenCapturedBy = -1
	if g.dealer < 0 {
		g.leader = g.cfg.Rand.Intn(game.NumSeats)
		g.dealer = (g.leader + game.NumSeats - 1) % game.NumSeats
	} else {
		g.leader = LeaderForDealer(g.dealer)
	}
	for i, h := range cards.Deal(game.NumSeats, g.cfg.Rand) {
		g.hands[i] = h
		g.initialHands[i] = h.Copy()
	}
	dealer, leader, hands := g.dealer, g.leader, g.handsCopy()
	g.mu.Unlock()

	g.reporter.ReportRoundStarted(g, dealer, leader)
	for seat, h := range hands {
		g.reporter.ReportHandDealt(g, seat, h)
	}
}

// handsCopy must be called with mu held.
func (g *Game) handsCopy() [game.NumSeats]cards.Cards {
	var hs [game.NumSeats]cards.Cards
	for i, h := range g.hands {
		hs[i] = h.Copy()
	}
	return hs
}

type selectionFailure struct {
	seat int
	err  error
}

// passCards asks all four seats at once and waits until every one has
// answered, failed or timed out. Cards leave all hands before any arrive.
func (g *Game) passCards(ctx context.Context) error {
	g.mu.Lock()
	g.phase = game.Passing
	var reqs [game.NumSeats]PassRequest
	for seat := range g.seats {
		reqs[seat] = PassRequest{
			Seat:   seat,
			Target: PassTarget(seat),
			Round:  g.round,
			Hand:   g.hands[seat].Copy(),
			Scores: g.scores,
		}
	}
	g.mu.Unlock()
	g.reporter.ReportPassStarted(g)

	var passed [game.NumSeats]cards.Cards
	var failures [game.NumSeats]error
	var eg errgroup.Group
	for seat := range g.seats {
		seat := seat
		eg.Go(func() error {
			passed[seat], failures[seat] = g.requestPass(ctx, reqs[seat])
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	for seat, err := range failures {
		if err != nil {
			g.reporter.ReportSelectionFailed(g, seat, game.SelectPass, err)
		}
	}

	g.mu.Lock()
	for seat, cs := range passed {
		g.hands[seat] = g.hands[seat].Without(cs)
	}
	for seat, cs := range passed {
		target := PassTarget(seat)
		g.hands[target] = append(g.hands[target], cs...)
		g.hands[target].Sort()
	}
	hands := g.handsCopy()
	g.mu.Unlock()

	g.reporter.ReportPassCompleted(g, passed)
	for seat, h := range hands {
		g.reporter.ReportHandUpdated(g, seat, h)
	}
	return nil
}

// requestPass always returns three cards from the hand. A non-nil error
// means the seat's own choice was replaced by the fallback.
func (g *Game) requestPass(ctx context.Context, req PassRequest) (cards.Cards, error) {
	seat := g.seats[req.Seat]
	chosen, err := callSeat(ctx, g.cfg.DecisionTimeout, func(ctx context.Context) (cards.Cards, error) {
		return seat.RequestPass(ctx, req)
	})
	if err == nil {
		err = validatePass(chosen, req.Hand)
	}
	if err != nil {
		return FallbackPass(req.Hand), err
	}
	return chosen.Copy(), nil
}

func validatePass(chosen, hand cards.Cards) error {
	if len(chosen) != cardsPerPass {
		return fmt.Errorf("got %d cards: %w", len(chosen), ErrBadPass)
	}
	seen := map[cards.Card]bool{}
	for _, c := range chosen {
		if seen[c] || !hand.ContainsCard(c) {
			return fmt.Errorf("%s: %w", c, ErrBadPass)
		}
		seen[c] = true
	}
	return nil
}

// FallbackPass picks the three highest-ranked cards of the hand.
func FallbackPass(hand cards.Cards) cards.Cards {
	sorted := hand.Copy()
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Suit < sorted[j].Suit
	})
	if len(sorted) > cardsPerPass {
		sorted = sorted[:cardsPerPass]
	}
	return sorted
}

func (g *Game) playTrick(ctx context.Context) error {
	g.mu.Lock()
	g.trick = cards.NewTrick()
	g.phase = game.Leading
	seat := g.leader
	g.mu.Unlock()

	for i := 0; i < game.NumSeats; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		req := g.turnRequest(seat)
		g.reporter.ReportNextTurn(g, seat)
		card, err := g.requestCard(ctx, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			g.reporter.ReportSelectionFailed(g, seat, game.SelectCard, err)
		}
		trickCards, hand := g.applyPlay(seat, card)
		g.reporter.ReportCardPlayed(g, seat, card, trickCards)
		g.reporter.ReportHandUpdated(g, seat, hand)
		seat = NextSeat(seat)
	}
	g.resolveTrick()
	return nil
}

func (g *Game) turnRequest(seat int) TurnRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	hand := g.hands[seat].Copy()
	return TurnRequest{
		Seat:        seat,
		Round:       g.round,
		Hand:        hand,
		LegalPlays:  LegalPlays(hand, g.trick.Cards()),
		Trick:       g.trick.Copy(),
		Tracker:     g.tracker.State(),
		Scores:      g.scores,
		RoundPoints: g.roundPoints,
	}
}

// requestCard always returns a legal card. A non-nil error means the seat's
// own choice was replaced by the first legal play.
func (g *Game) requestCard(ctx context.Context, req TurnRequest) (cards.Card, error) {
	seat := g.seats[req.Seat]
	card, err := callSeat(ctx, g.cfg.DecisionTimeout, func(ctx context.Context) (cards.Card, error) {
		return seat.RequestCard(ctx, req)
	})
	if err == nil {
		err = validateCard(card, req)
	}
	if err != nil {
		return req.LegalPlays[0], err
	}
	return card, nil
}

func validateCard(card cards.Card, req TurnRequest) error {
	if !req.Hand.ContainsCard(card) {
		return fmt.Errorf("%s: %w", card, ErrNotInHand)
	}
	if !req.LegalPlays.ContainsCard(card) {
		return fmt.Errorf("%s: %w", card, ErrIllegalPlay)
	}
	return nil
}

func (g *Game) applyPlay(seat int, card cards.Card) (cards.Cards, cards.Cards) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hands[seat] = g.hands[seat].Remove(card)
	g.tracker.RecordCardPlayed(card, seat, g.trick.Cards())
	g.trick.Add(seat, card)
	g.phase = game.Following
	return g.trick.Cards(), g.hands[seat].Copy()
}

func (g *Game) resolveTrick() {
	g.mu.Lock()
	win, _ := g.trick.Winner()
	trickCards := g.trick.Cards()
	points := trickCards.Points()
	g.roundPoints[win.Seat] += points
	if trickCards.ContainsCard(cards.QueenOfSpades) {
		g.queenCapturedBy = win.Seat
	}
	g.tracker.EndTrick()
	g.leader = win.Seat
	g.phase = game.TrickResolved
	g.mu.Unlock()

	g.log.WithFields(logrus.Fields{
		"trick":   trickCards.String(),
		"winning": win.Card.String(),
		"winner":  win.Seat,
	}).Debug("trick resolved")
	g.reporter.ReportTrickCompleted(g, trickCards, win.Seat, points)

	g.mu.Lock()
	g.trick = cards.NewTrick()
	g.mu.Unlock()
	g.reporter.ReportPileCleared(g)
}

// endRound folds the round into the cumulative scores and rotates the dealer.
func (g *Game) endRound() bool {
	g.mu.Lock()
	for seat, p := range g.roundPoints {
		g.scores[seat] += p
	}
	if g.queenCapturedBy >= 0 {
		g.dealer = g.queenCapturedBy
	}
	g.phase = game.RoundEnded
	roundPoints, scores := g.roundPoints, g.scores
	loser, over := Loser(scores, g.cfg.ScoreLimit)
	if over {
		g.phase = game.GameOver
		g.loser = loser
	}
	g.mu.Unlock()

	g.reporter.ReportScoresUpdated(g, roundPoints, scores)
	g.reporter.ReportRoundEnded(g, roundPoints)
	if over {
		g.reporter.ReportGameFinished(g, loser)
	}
	return over
}

// Loser returns the seat with the strictly highest score among those at or
// over limit, preferring the lower seat on a tie. The bool is false while
// nobody has reached the limit.
func Loser(scores [game.NumSeats]int, limit int) (int, bool) {
	loser := -1
	for seat, s := range scores {
		if s < limit {
			continue
		}
		if loser < 0 || s > scores[loser] {
			loser = seat
		}
	}
	return loser, loser >= 0
}

// callSeat runs one seat request bounded by timeout. A seat that ignores its
// context or panics cannot hold up or crash the table.
func callSeat[T any](ctx context.Context, timeout time.Duration, f func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("seat panicked: %v", r)}
			}
		}()
		v, err := f(ctx)
		done <- outcome{v: v, err: err}
	}()

	var zero T
	select {
	case o := <-done:
		if o.err != nil && errors.Is(o.err, context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %v", ErrSelectionTimeout, o.err)
		}
		return o.v, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", ErrSelectionTimeout, timeout)
		}
		return zero, ctx.Err()
	}
}
