package player

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus"
)

// TerminalKind selects a seat played from the keyboard.
const TerminalKind = "term"

// Kinds lists the player types a player flag accepts.
func Kinds() []string {
	return append(strategy.Names(), TerminalKind)
}

// Creates a flag for specifying the player type to use.
func AddPlayerFlag(fs *flag.FlagSet, target *string, name string) {
	EnumFlag(fs, target, name, Kinds(), "Type of player logic to use")
}

// Constructs a bot seat from a player flag value. An empty value is basic.
func NewBotFromFlag(playerType string, rng *rand.Rand, log logrus.FieldLogger) (*BotSeat, error) {
	if playerType == "" {
		playerType = "basic"
	}
	if playerType == TerminalKind {
		return nil, fmt.Errorf("player type %s is not a bot", playerType)
	}
	s, err := strategy.ByName(playerType, rng)
	if err != nil {
		return nil, fmt.Errorf("invalid player type %s: %w", playerType, err)
	}
	return NewBotSeat(s, log), nil
}
