package game

import (
	"strconv"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/sirupsen/logrus"
)

// NewLogReporter logs every notification as a structured entry.
// Per-card traffic goes to Debug, lifecycle to Info, failures to Warn.
func NewLogReporter(log logrus.FieldLogger) Reporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &logReporter{log: log}
}

type logReporter struct {
	log logrus.FieldLogger
}

func (r *logReporter) entry(g Game) *logrus.Entry {
	return r.log.WithFields(logrus.Fields{
		"game":  g.Id(),
		"round": g.RoundNumber(),
	})
}

func (r *logReporter) ReportGameInitialized(g Game) {
	r.entry(g).Info("game initialized")
}
func (r *logReporter) ReportGameStarted(g Game) {
	r.entry(g).Info("game started")
}
func (r *logReporter) ReportRoundStarted(g Game, dealer, leader int) {
	r.entry(g).WithFields(logrus.Fields{"dealer": dealer, "leader": leader}).Info("round started")
}
func (r *logReporter) ReportHandDealt(g Game, seat int, hand cards.Cards) {
	r.entry(g).WithFields(logrus.Fields{"seat": seat, "hand": hand.HandString()}).Debug("hand dealt")
}
func (r *logReporter) ReportHandUpdated(g Game, seat int, hand cards.Cards) {
	r.entry(g).WithFields(logrus.Fields{"seat": seat, "hand": hand.HandString()}).Debug("hand updated")
}
func (r *logReporter) ReportPassStarted(g Game) {
	r.entry(g).Debug("pass started")
}
func (r *logReporter) ReportPassCompleted(g Game, passed [NumSeats]cards.Cards) {
	fields := logrus.Fields{}
	for seat, cs := range passed {
		fields[seatKey(seat)] = cs.String()
	}
	r.entry(g).WithFields(fields).Debug("pass completed")
}
func (r *logReporter) ReportNextTurn(g Game, seat int) {
	r.entry(g).WithField("seat", seat).Debug("next turn")
}
func (r *logReporter) ReportCardPlayed(g Game, seat int, card cards.Card, trick cards.Cards) {
	r.entry(g).WithFields(logrus.Fields{"seat": seat, "card": card.String(), "trick": trick.String()}).Debug("card played")
}
func (r *logReporter) ReportTrickCompleted(g Game, trick cards.Cards, winner, points int) {
	r.entry(g).WithFields(logrus.Fields{"trick": trick.String(), "winner": winner, "points": points}).Debug("trick completed")
}
func (r *logReporter) ReportPileCleared(g Game) {}
func (r *logReporter) ReportScoresUpdated(g Game, roundPoints, scores [NumSeats]int) {
	r.entry(g).WithFields(logrus.Fields{"points": roundPoints, "scores": scores}).Info("scores updated")
}
func (r *logReporter) ReportRoundEnded(g Game, roundPoints [NumSeats]int) {
	r.entry(g).WithField("points", roundPoints).Info("round ended")
}
func (r *logReporter) ReportGameFinished(g Game, loser int) {
	r.entry(g).WithFields(logrus.Fields{"loser": loser, "scores": g.Scores()}).Info("game over")
}
func (r *logReporter) ReportSelectionFailed(g Game, seat int, kind SelectionKind, err error) {
	r.entry(g).WithFields(logrus.Fields{"seat": seat, "kind": kind.String()}).WithError(err).Warn("selection failed, using fallback")
}

func seatKey(seat int) string {
	return "seat" + strconv.Itoa(seat)
}

// Reporters fans each notification out to every reporter in order.
type Reporters []Reporter

func (rs Reporters) ReportGameInitialized(g Game) {
	for _, r := range rs {
		r.ReportGameInitialized(g)
	}
}
func (rs Reporters) ReportGameStarted(g Game) {
	for _, r := range rs {
		r.ReportGameStarted(g)
	}
}
func (rs Reporters) ReportRoundStarted(g Game, dealer, leader int) {
	for _, r := range rs {
		r.ReportRoundStarted(g, dealer, leader)
	}
}
func (rs Reporters) ReportHandDealt(g Game, seat int, hand cards.Cards) {
	for _, r := range rs {
		r.ReportHandDealt(g, seat, hand)
	}
}
func (rs Reporters) ReportHandUpdated(g Game, seat int, hand cards.Cards) {
	for _, r := range rs {
		r.ReportHandUpdated(g, seat, hand)
	}
}
func (rs Reporters) ReportPassStarted(g Game) {
	for _, r := range rs {
		r.ReportPassStarted(g)
	}
}
func (rs Reporters) ReportPassCompleted(g Game, passed [NumSeats]cards.Cards) {
	for _, r := range rs {
		r.ReportPassCompleted(g, passed)
	}
}
func (rs Reporters) ReportNextTurn(g Game, seat int) {
	for _, r := range rs {
		r.ReportNextTurn(g, seat)
	}
}
func (rs Reporters) ReportCardPlayed(g Game, seat int, card cards.Card, trick cards.Cards) {
	for _, r := range rs {
		r.ReportCardPlayed(g, seat, card, trick)
	}
}
func (rs Reporters) ReportTrickCompleted(g Game, trick cards.Cards, winner, points int) {
	for _, r := range rs {
		r.ReportTrickCompleted(g, trick, winner, points)
	}
}
func (rs Reporters) ReportPileCleared(g Game) {
	for _, r := range rs {
		r.ReportPileCleared(g)
	}
}
func (rs Reporters) ReportScoresUpdated(g Game, roundPoints, scores [NumSeats]int) {
	for _, r := range rs {
		r.ReportScoresUpdated(g, roundPoints, scores)
	}
}
func (rs Reporters) ReportRoundEnded(g Game, roundPoints [NumSeats]int) {
	for _, r := range rs {
		r.ReportRoundEnded(g, roundPoints)
	}
}
func (rs Reporters) ReportGameFinished(g Game, loser int) {
	for _, r := range rs {
		r.ReportGameFinished(g, loser)
	}
}
func (rs Reporters) ReportSelectionFailed(g Game, seat int, kind SelectionKind, err error) {
	for _, r := range rs {
		r.ReportSelectionFailed(g, seat, kind, err)
	}
}
