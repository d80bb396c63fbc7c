package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus"
)

// ErrContractViolation marks a strategy answer that was malformed, not in
// hand or not legal.
var ErrContractViolation = errors.New("strategy broke its contract")

// BotSeat seats a strategy at the table. It encodes every request into the
// strategy's token form and checks the answer before it reaches the table.
type BotSeat struct {
	strategy strategy.Strategy
	log      logrus.FieldLogger
}

func NewBotSeat(s strategy.Strategy, log logrus.FieldLogger) *BotSeat {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BotSeat{strategy: s, log: log.WithField("strategy", strategyName(s))}
}

func strategyName(s strategy.Strategy) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// RequestPass asks the strategy for three cards. On a contract violation it
// returns the fallback pass along with an error wrapping ErrContractViolation.
func (b *BotSeat) RequestPass(ctx context.Context, req hearts.PassRequest) (passed cards.Cards, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			passed = hearts.FallbackPass(req.Hand)
			err = fmt.Errorf("%w: panic: %v", ErrContractViolation, r)
		}
	}()
	tokens := b.strategy.ChoosePass(strategy.NewHand(req.Hand), passContext(req))
	passed, err = decodePass(tokens, req.Hand)
	if err != nil {
		return hearts.FallbackPass(req.Hand), err
	}
	b.log.WithFields(logrus.Fields{"seat": req.Seat, "pass": passed.String()}).Debug("chose pass")
	return passed, nil
}

// RequestCard asks the strategy to lead or follow. On a contract violation
// it returns the first legal play along with an error wrapping
// ErrContractViolation.
func (b *BotSeat) RequestCard(ctx context.Context, req hearts.TurnRequest) (card cards.Card, err error) {
	if err := ctx.Err(); err != nil {
		return cards.Card{}, err
	}
	if len(req.LegalPlays) == 0 {
		return cards.Card{}, fmt.Errorf("seat %d: %w", req.Seat, hearts.ErrIllegalPlay)
	}
	fallback := req.LegalPlays[0]
	defer func() {
		if r := recover(); r != nil {
			card = fallback
			err = fmt.Errorf("%w: panic: %v", ErrContractViolation, r)
		}
	}()
	token := b.chooseCard(req)
	card, err = decodePlay(token, req)
	if err != nil {
		return fallback, err
	}
	b.log.WithFields(logrus.Fields{"seat": req.Seat, "card": token}).Debug("chose card")
	return card, nil
}

func (b *BotSeat) chooseCard(req hearts.TurnRequest) string {
	hand := strategy.NewHand(req.Hand)
	if req.Leading() {
		return b.strategy.ChooseLead(hand, leadContext(req))
	}
	return b.strategy.ChooseFollow(hand, followContext(req))
}

func decodePass(tokens []string, hand cards.Cards) (cards.Cards, error) {
	if len(tokens) != 3 {
		return nil, fmt.Errorf("%w: got %d pass cards", ErrContractViolation, len(tokens))
	}
	var passed cards.Cards
	for _, t := range tokens {
		c, err := cards.ParseCard(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
		}
		if !hand.ContainsCard(c) || passed.ContainsCard(c) {
			return nil, fmt.Errorf("%w: cannot pass %s", ErrContractViolation, t)
		}
		passed = append(passed, c)
	}
	return passed, nil
}

func decodePlay(token string, req hearts.TurnRequest) (cards.Card, error) {
	c, err := cards.ParseCard(token)
	if err != nil {
		return cards.Card{}, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	if !req.Hand.ContainsCard(c) {
		return cards.Card{}, fmt.Errorf("%w: %s: %v", ErrContractViolation, token, hearts.ErrNotInHand)
	}
	if !req.LegalPlays.ContainsCard(c) {
		return cards.Card{}, fmt.Errorf("%w: %s: %v", ErrContractViolation, token, hearts.ErrIllegalPlay)
	}
	return c, nil
}

func passContext(req hearts.PassRequest) strategy.PassContext {
	return strategy.PassContext{Seat: req.Seat, Target: req.Target, Scores: req.Scores}
}

func trickCards(req hearts.TurnRequest) cards.Cards {
	if req.Trick == nil {
		return cards.Cards{}
	}
	return req.Trick.Cards()
}

// leadContext derives what a strategy may know from the public tracker
// state and the seat's own hand.
func leadContext(req hearts.TurnRequest) strategy.LeadContext {
	ts := req.Tracker
	queenHeld := req.Hand.ContainsCard(cards.QueenOfSpades)
	return strategy.LeadContext{
		Seat:              req.Seat,
		Scores:            req.Scores,
		RoundPoints:       req.RoundPoints,
		Remaining:         ts.RemainingCounts(),
		RankPositions:     ts.RelativeRankPositions(req.Hand),
		LikelyHolders:     ts.SeatsLikelyHoldingSuit(req.Seat),
		PenaltyFree:       ts.PenaltyFree,
		QueenHeld:         queenHeld,
		TenHeld:           req.Hand.ContainsCard(cards.TenOfDiamonds),
		Phase:             strategy.ClassifyTrick(ts.TricksPlayed, trickCards(req), ts.QueenPlayed, queenHeld),
		HeartsBroken:      ts.HeartsBroken,
		QueenPlayed:       ts.QueenPlayed,
		TenPlayed:         ts.TenPlayed,
		TricksPlayed:      ts.TricksPlayed,
		FirstVoidPosition: ts.FirstTrickVoidPosition,
		Legal:             req.LegalPlays.Strings(),
	}
}

func followContext(req hearts.TurnRequest) strategy.FollowContext {
	ctx := strategy.FollowContext{LeadContext: leadContext(req)}
	trick := trickCards(req)
	if len(trick) == 0 {
		return ctx
	}
	ctx.LeadSuit = trick[0].Suit
	ctx.HighestInLead = trick.FilterBySuit(ctx.LeadSuit).Highest().String()
	ctx.TrickPoints = trick.Points()
	for _, p := range req.Trick.Plays {
		ctx.Trick = append(ctx.Trick, strategy.Play{Seat: p.Seat, Card: p.Card.String()})
	}
	return ctx
}
