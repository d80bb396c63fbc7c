package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Weights tunes the heuristic. Zero disables a refinement.
type Weights struct {
	// Passing danger scores.
	QueenDanger       float64 `json:"queenDanger"`
	TenDanger         float64 `json:"tenDanger"`
	HighSpadeDanger   float64 `json:"highSpadeDanger"`
	HighDiamondDanger float64 `json:"highDiamondDanger"`
	HeartRank         float64 `json:"heartRank"`
	ShortSuitRank     float64 `json:"shortSuitRank"`
	VoidBonus         float64 `json:"voidBonus"`
	// QueenGuards is how many lower spades make the queen safe to keep.
	QueenGuards int `json:"queenGuards"`
	TenGuards   int `json:"tenGuards"`

	// Leading.
	VoidExposure    float64 `json:"voidExposure"`
	DuelPenalty     float64 `json:"duelPenalty"`
	FlushQueenBonus float64 `json:"flushQueenBonus"`

	// Following.
	ShedWhenLast   bool `json:"shedWhenLast"`
	PlayHighEarly  bool `json:"playHighEarly"`
	DumpQueenFirst bool `json:"dumpQueenFirst"`
	// BurnUnderQueen follows a spade lead with the highest spade below the
	// queen while the queen is out and no later seat is known void.
	BurnUnderQueen bool `json:"burnUnderQueen"`
	TeamPlay       bool `json:"teamPlay"`
}

// BasicWeights ranks cards by rank and penalty only.
func BasicWeights() Weights {
	return Weights{
		QueenDanger:       100,
		TenDanger:         80,
		HighSpadeDanger:   50,
		HighDiamondDanger: 20,
		HeartRank:         3,
		ShortSuitRank:     1,
		PlayHighEarly:     true,
	}
}

// ProbabilisticWeights adds void building, card-location reasoning and
// end-of-trick shedding to the basic weights.
func ProbabilisticWeights() Weights {
	w := BasicWeights()
	w.VoidBonus = 18
	w.QueenGuards = 4
	w.TenGuards = 4
	w.VoidExposure = 6
	w.DuelPenalty = 8
	w.FlushQueenBonus = 3
	w.ShedWhenLast = true
	w.DumpQueenFirst = true
	w.BurnUnderQueen = true
	return w
}

// TeamWeights plays the probabilistic game with the seat across as partner.
func TeamWeights() Weights {
	w := ProbabilisticWeights()
	w.TeamPlay = true
	return w
}

func Basic() *Heuristic {
	return NewHeuristic("basic", BasicWeights())
}

func Probabilistic() *Heuristic {
	return NewHeuristic("prob", ProbabilisticWeights())
}

func Team() *Heuristic {
	return NewHeuristic("team", TeamWeights())
}

var ErrUnknownStrategy = errors.New("unknown strategy")

var presets = map[string]func() Weights{
	"basic": BasicWeights,
	"prob":  ProbabilisticWeights,
	"team":  TeamWeights,
}

// PresetWeights returns the weights of a named heuristic preset.
func PresetWeights(name string) (Weights, error) {
	preset, ok := presets[strings.ToLower(name)]
	if !ok {
		return Weights{}, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return preset(), nil
}

// Names lists every strategy ByName accepts.
func Names() []string {
	names := []string{"random"}
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a strategy. rng only feeds the random strategy.
func ByName(name string, rng *rand.Rand) (Strategy, error) {
	if strings.EqualFold(name, "random") {
		return NewRandom(rng), nil
	}
	w, err := PresetWeights(name)
	if err != nil {
		return nil, err
	}
	return NewHeuristic(strings.ToLower(name), w), nil
}
