package strategy

import (
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"golang.org/x/exp/slices"
)

// Heuristic is the tunable penalty-avoiding strategy behind every preset.
type Heuristic struct {
	name string
	w    Weights
}

func NewHeuristic(name string, w Weights) *Heuristic {
	return &Heuristic{name: name, w: w}
}

func (h *Heuristic) Name() string {
	return h.name
}

func (h *Heuristic) Weights() Weights {
	return h.w
}

func notPenalty(c cards.Card) bool {
	return !c.IsPenalty()
}

func notSuit(s cards.Suit) func(cards.Card) bool {
	return func(c cards.Card) bool { return c.Suit != s }
}

// dangerFrame holds what the danger score knows beyond the hand itself.
type dangerFrame struct {
	passing   bool
	queenGone bool
	tenGone   bool
}

// danger scores how likely c is to cost points if kept.
func (h *Heuristic) danger(c cards.Card, hand cards.Cards, f dangerFrame) float64 {
	w := h.w
	suit := hand.FilterBySuit(c.Suit)
	lower := len(suit.Filter(func(o cards.Card) bool { return o.Value < c.Value }))
	switch c {
	case cards.QueenOfSpades:
		if w.QueenGuards > 0 && lower >= w.QueenGuards {
			return w.QueenDanger / 10
		}
		return w.QueenDanger
	case cards.TenOfDiamonds:
		if w.TenGuards > 0 && lower >= w.TenGuards {
			return w.TenDanger / 10
		}
		return w.TenDanger
	}

	rank := float64(c.Value.Ordinal())
	score := rank * w.ShortSuitRank * 4 / float64(len(suit))
	switch c.Suit {
	case cards.Hearts:
		score += rank * w.HeartRank
	case cards.Spades:
		// High spades catch the queen when someone else holds it.
		if c.Value > cards.Queen && !f.queenGone && !hand.ContainsCard(cards.QueenOfSpades) {
			score += w.HighSpadeDanger
		}
	case cards.Diamonds:
		if c.Value > cards.Ten && !f.tenGone && !hand.ContainsCard(cards.TenOfDiamonds) {
			score += w.HighDiamondDanger
		}
	}
	if f.passing {
		score += h.voidBonus(c, suit, hand)
	}
	return score
}

// voidBonus rewards giving away a card that leaves its suit nearly empty.
// Guards of a kept penalty card earn nothing.
func (h *Heuristic) voidBonus(c cards.Card, suit, hand cards.Cards) float64 {
	left := len(suit) - 1
	if h.w.VoidBonus == 0 || left > 2 {
		return 0
	}
	if c.Suit == cards.Spades && c != cards.QueenOfSpades && hand.ContainsCard(cards.QueenOfSpades) {
		return 0
	}
	if c.Suit == cards.Diamonds && c != cards.TenOfDiamonds && hand.ContainsCard(cards.TenOfDiamonds) {
		return 0
	}
	return h.w.VoidBonus * float64(3-left) / 3
}

// mostDangerous picks the candidate with the highest danger score, with ties
// going to the higher rank and then to the earlier card.
func (h *Heuristic) mostDangerous(candidates, hand cards.Cards, f dangerFrame) cards.Card {
	best := candidates[0]
	bestScore := h.danger(best, hand, f)
	for _, c := range candidates[1:] {
		score := h.danger(c, hand, f)
		if score > bestScore || (score == bestScore && c.Value > best.Value) {
			best, bestScore = c, score
		}
	}
	return best
}

// ChoosePass gives away the three most dangerous cards, one at a time,
// rescoring the rest of the hand after each choice.
func (h *Heuristic) ChoosePass(hand Hand, ctx PassContext) []string {
	remaining := hand.Cards()
	passed := []string{}
	for len(passed) < 3 && len(remaining) > 0 {
		c := h.mostDangerous(remaining, remaining, dangerFrame{passing: true})
		passed = append(passed, c.String())
		remaining = remaining.Without(cards.Cards{c})
	}
	return passed
}

func (h *Heuristic) ChooseLead(hand Hand, ctx LeadContext) string {
	legal := parseTokens(ctx.Legal)
	if len(legal) == 0 {
		return ""
	}
	if len(legal) == 1 {
		return legal[0].String()
	}
	candidates := legal.Filter(notPenalty)
	if len(candidates) == 0 {
		// Only penalty cards left: give up the ten before the queen.
		if legal.ContainsCard(cards.TenOfDiamonds) {
			return cards.TenOfDiamonds.String()
		}
		return legal[0].String()
	}
	if !ctx.HeartsBroken {
		if nonHearts := candidates.Filter(notSuit(cards.Hearts)); len(nonHearts) > 0 {
			candidates = nonHearts
		}
	}

	own := hand.Cards()
	best := candidates[0]
	bestRisk := h.leadRisk(best, own, ctx)
	for _, c := range candidates[1:] {
		risk := h.leadRisk(c, own, ctx)
		if risk < bestRisk || (risk == bestRisk && c.Value < best.Value) {
			best, bestRisk = c, risk
		}
	}
	return best.String()
}

// leadRisk estimates the points expected from winning a trick led with c.
func (h *Heuristic) leadRisk(c cards.Card, own cards.Cards, ctx LeadContext) float64 {
	w := h.w
	suit := own.FilterBySuit(c.Suit)
	suit.Sort()
	positions := ctx.RankPositions[c.Suit]

	win := 1.0
	followers := len(ctx.LikelyHolders[c.Suit])
	if higher := outstandingAbove(c, suit, positions, ctx.Remaining[c.Suit]); followers > 0 && higher > 0 {
		win = 1 / (1 + float64(higher*followers)/3)
	}

	cost := 1 + float64(c.PenaltyValue())
	if c.Suit == cards.Spades && c.Value > cards.Queen && !ctx.QueenPlayed && !ctx.QueenHeld {
		cost += float64(cards.QueenOfSpades.PenaltyValue())
	}
	if c.Suit == cards.Diamonds && c.Value > cards.Ten && !ctx.TenPlayed && !ctx.TenHeld {
		cost += float64(cards.TenOfDiamonds.PenaltyValue())
	}
	cost += w.VoidExposure * dumpers(ctx, c.Suit)

	risk := win * cost
	if w.DuelPenalty > 0 && winsDuel(positions, ctx.Remaining[c.Suit]) {
		risk += w.DuelPenalty * win
	}
	if w.FlushQueenBonus > 0 && c.Suit == cards.Spades && c.Value < cards.Queen &&
		!ctx.QueenPlayed && !ctx.QueenHeld && !own.ContainsAny(cards.Cks, cards.Cas) {
		risk -= w.FlushQueenBonus
	}
	return risk
}

// outstandingAbove counts the unplayed cards above c held by other seats.
func outstandingAbove(c cards.Card, suit cards.Cards, positions []int, remaining int) int {
	for i, o := range suit {
		if o != c {
			continue
		}
		if len(positions) != len(suit) {
			break
		}
		ownAbove := len(suit) - 1 - i
		return remaining - positions[i] - ownAbove
	}
	// No rank information: assume every higher value not in hand is still out.
	n := 0
	for v := c.Value + 1; v <= cards.Ace; v++ {
		if !suit.ContainsCard(cards.Card{Value: v, Suit: c.Suit}) {
			n++
		}
	}
	return n
}

// winsDuel reports whether own cards, matched from the top down against the
// highest cards the other seats could hold, beat every one of them.
func winsDuel(positions []int, remaining int) bool {
	if len(positions) == 0 {
		return false
	}
	var theirs []int
	for p := remaining; p >= 1; p-- {
		if !slices.Contains(positions, p) {
			theirs = append(theirs, p)
		}
	}
	for i := 0; i < len(positions) && i < len(theirs); i++ {
		if positions[len(positions)-1-i] < theirs[i] {
			return false
		}
	}
	return true
}

// dumpers weighs the other seats known void in suit, who may discard points
// onto the trick. A seat proven free of penalty cards counts half.
func dumpers(ctx LeadContext, suit cards.Suit) float64 {
	holding := map[int]bool{}
	for _, seat := range ctx.LikelyHolders[suit] {
		holding[seat] = true
	}
	n := 0.0
	for seat := 0; seat < numSeats; seat++ {
		if seat == ctx.Seat || holding[seat] {
			continue
		}
		if ctx.PenaltyFree[seat] {
			n += 0.5
		} else {
			n++
		}
	}
	return n
}

func (h *Heuristic) ChooseFollow(hand Hand, ctx FollowContext) string {
	legal := parseTokens(ctx.Legal)
	if len(legal) == 0 {
		return ""
	}
	if len(legal) == 1 {
		return legal[0].String()
	}
	if legal.ContainsSuit(ctx.LeadSuit) {
		return h.followSuit(legal.FilterBySuit(ctx.LeadSuit), ctx).String()
	}
	return h.discard(legal, hand.Cards(), ctx).String()
}

func (h *Heuristic) followSuit(legal cards.Cards, ctx FollowContext) cards.Card {
	highest, err := cards.ParseCard(ctx.HighestInLead)
	if err != nil {
		return legal.Lowest()
	}
	partnerWinning := h.w.TeamPlay && ctx.currentWinner() == Partner(ctx.Seat)
	safe := legal.Filter(func(c cards.Card) bool { return c.Value < highest.Value })

	// Burn spades under the queen while it is still out. A seat behind us
	// that is out of spades could drop the queen on whatever wins here.
	if h.w.BurnUnderQueen && ctx.Phase == QueenTrick && ctx.LeadSuit == cards.Spades &&
		highest.Value < cards.Queen && ctx.TrickPoints == 0 && !ctx.lastToPlay() &&
		!ctx.voidFollower(cards.Spades) {
		if under := legal.Filter(func(c cards.Card) bool { return c.Value < cards.Queen }); len(under) > 0 {
			return under.Highest()
		}
	}

	if len(safe) > 0 {
		// A penalty card that loses goes now, unless it lands on the partner.
		if pens := safe.Filter(cards.Card.IsPenalty); len(pens) > 0 && !partnerWinning {
			return pens[0]
		}
		if h.w.ShedWhenLast && ctx.lastToPlay() && ctx.TrickPoints == 0 && !partnerWinning {
			if clean := legal.Filter(notPenalty); len(clean) > 0 {
				return clean.Highest()
			}
		}
		if clean := safe.Filter(notPenalty); len(clean) > 0 {
			return clean.Highest()
		}
		return safe.Highest()
	}

	// Every card wins the trick so far.
	clean := legal.Filter(notPenalty)
	if len(clean) == 0 {
		return legal.Lowest()
	}
	// Last to play wins anyway; shed the card most likely to win later.
	if h.w.ShedWhenLast && ctx.lastToPlay() {
		return clean.Highest()
	}
	if h.w.PlayHighEarly && ctx.Phase == FirstTrick && ctx.TrickPoints == 0 && highIsSafe(ctx) {
		return clean.Highest()
	}
	return clean.Lowest()
}

// highIsSafe reports whether a high card of the lead suit cannot draw a
// penalty card from a seat that still has to follow.
func highIsSafe(ctx FollowContext) bool {
	switch ctx.LeadSuit {
	case cards.Clubs:
		return true
	case cards.Diamonds:
		return ctx.TenPlayed || ctx.TenHeld
	}
	return false
}

func (h *Heuristic) discard(legal, own cards.Cards, ctx FollowContext) cards.Card {
	partnerWinning := h.w.TeamPlay && ctx.currentWinner() == Partner(ctx.Seat)

	if pens := legal.Filter(cards.Card.IsPenalty); len(pens) > 0 {
		if len(pens) == 1 {
			return pens[0]
		}
		queenFirst := h.w.DumpQueenFirst
		if h.w.TeamPlay {
			queenFirst = !partnerWinning
		}
		if queenFirst {
			return cards.QueenOfSpades
		}
		return cards.TenOfDiamonds
	}

	f := dangerFrame{queenGone: ctx.QueenPlayed, tenGone: ctx.TenPlayed}
	if partnerWinning {
		if others := legal.Filter(notSuit(cards.Hearts)); len(others) > 0 {
			return h.mostDangerous(others, own, f)
		}
		return legal.FilterBySuit(cards.Hearts).Lowest()
	}
	if hearts := legal.FilterBySuit(cards.Hearts); len(hearts) > 0 {
		return hearts.Highest()
	}
	return h.mostDangerous(legal, own, f)
}
