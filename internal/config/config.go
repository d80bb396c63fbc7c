// Package config gathers the settings shared by the command-line tools.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// .env file, HEARTS_* environment variables and command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/player"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

const envPrefix = "HEARTS_"

var ErrBadConfig = errors.New("bad configuration")

type Config struct {
	ScoreLimit      int
	DecisionTimeout time.Duration
	// Seed 0 seeds from the clock.
	Seed     int64
	LogLevel string
	// WeightsFile is a JSON strategy.Weights applied over each heuristic preset.
	WeightsFile string
	Games       int
	// Strategies holds one player kind per seat.
	Strategies [4]string
}

func Default() Config {
	return Config{
		ScoreLimit:      hearts.DefaultScoreLimit,
		DecisionTimeout: hearts.DefaultDecisionTimeout,
		LogLevel:        "info",
		Games:           1,
		Strategies:      [4]string{"basic", "basic", "basic", "basic"},
	}
}

// Load reads envFiles (".env" when none are given; missing files are
// skipped), then the environment, then parses args against flags.
func Load(flags *flag.FlagSet, args []string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	c := Default()
	if err := c.fromEnv(); err != nil {
		return Config{}, err
	}
	players := strings.Join(c.Strategies[:], ",")
	flags.IntVar(&c.ScoreLimit, "limit", c.ScoreLimit, "Score that ends the game")
	flags.DurationVar(&c.DecisionTimeout, "timeout", c.DecisionTimeout, "Time each seat has to decide")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed, 0 for the clock")
	flags.StringVar(&c.LogLevel, "log", c.LogLevel, "Log level")
	flags.StringVar(&c.WeightsFile, "weights", c.WeightsFile, "JSON file of strategy weights")
	flags.IntVar(&c.Games, "games", c.Games, "Number of games to play")
	flags.StringVar(&players, "players", players, fmt.Sprintf("Comma separated player kinds, one or four of %v", player.Kinds()))
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.setStrategies(players); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (c *Config) fromEnv() error {
	var err error
	if v, ok := lookup("SCORE_LIMIT"); ok {
		if c.ScoreLimit, err = strconv.Atoi(v); err != nil {
			return envError("SCORE_LIMIT", err)
		}
	}
	if v, ok := lookup("DECISION_TIMEOUT"); ok {
		if c.DecisionTimeout, err = time.ParseDuration(v); err != nil {
			return envError("DECISION_TIMEOUT", err)
		}
	}
	if v, ok := lookup("SEED"); ok {
		if c.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return envError("SEED", err)
		}
	}
	if v, ok := lookup("GAMES"); ok {
		if c.Games, err = strconv.Atoi(v); err != nil {
			return envError("GAMES", err)
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("WEIGHTS"); ok {
		c.WeightsFile = v
	}
	if v, ok := lookup("PLAYERS"); ok {
		return c.setStrategies(v)
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func envError(name string, err error) error {
	return fmt.Errorf("%s%s: %w: %v", envPrefix, name, ErrBadConfig, err)
}

// setStrategies accepts one kind for every seat or four comma separated kinds.
func (c *Config) setStrategies(list string) error {
	kinds := strings.Split(list, ",")
	for i := range kinds {
		kinds[i] = strings.ToLower(strings.TrimSpace(kinds[i]))
	}
	switch len(kinds) {
	case 1:
		c.Strategies = [4]string{kinds[0], kinds[0], kinds[0], kinds[0]}
	case 4:
		copy(c.Strategies[:], kinds)
	default:
		return fmt.Errorf("players %q: %w: want 1 or 4 kinds", list, ErrBadConfig)
	}
	return nil
}

func (c Config) Validate() error {
	if c.ScoreLimit <= 0 {
		return fmt.Errorf("score limit %d: %w", c.ScoreLimit, ErrBadConfig)
	}
	if c.DecisionTimeout <= 0 {
		return fmt.Errorf("decision timeout %s: %w", c.DecisionTimeout, ErrBadConfig)
	}
	if c.Games <= 0 {
		return fmt.Errorf("games %d: %w", c.Games, ErrBadConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	kinds := player.Kinds()
	for seat, k := range c.Strategies {
		if !slices.Contains(kinds, k) {
			return fmt.Errorf("seat %d player %q: %w: choose from %v", seat, k, ErrBadConfig, kinds)
		}
	}
	return nil
}

// Logger returns a logger at the configured level.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}

func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Table returns the game settings.
func (c Config) Table(rng *rand.Rand, log logrus.FieldLogger) hearts.Config {
	return hearts.Config{
		ScoreLimit:      c.ScoreLimit,
		DecisionTimeout: c.DecisionTimeout,
		Rand:            rng,
		Log:             log,
	}
}

// Weights returns the named preset with the weights file, if any, laid over
// it. Fields the file leaves out keep their preset values.
func (c Config) Weights(preset string) (strategy.Weights, error) {
	w, err := strategy.PresetWeights(preset)
	if err != nil {
		return w, err
	}
	if c.WeightsFile == "" {
		return w, nil
	}
	data, err := os.ReadFile(c.WeightsFile)
	if err != nil {
		return w, err
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("%s: %w: %v", c.WeightsFile, ErrBadConfig, err)
	}
	return w, nil
}

// Strategy builds the strategy for a bot seat.
func (c Config) Strategy(seat int, rng *rand.Rand) (strategy.Strategy, error) {
	kind := c.Strategies[seat]
	if kind == player.TerminalKind {
		return nil, fmt.Errorf("seat %d is played from the terminal", seat)
	}
	if kind == "random" {
		return strategy.NewRandom(rand.New(rand.NewSource(rng.Int63()))), nil
	}
	w, err := c.Weights(kind)
	if err != nil {
		return nil, err
	}
	return strategy.NewHeuristic(kind, w), nil
}

// Bots seats a bot at each non-terminal seat; terminal seats are left nil.
func (c Config) Bots(rng *rand.Rand, log logrus.FieldLogger) ([4]hearts.Seat, error) {
	var seats [4]hearts.Seat
	for i, kind := range c.Strategies {
		if kind == player.TerminalKind {
			continue
		}
		s, err := c.Strategy(i, rng)
		if err != nil {
			return seats, err
		}
		seats[i] = player.NewBotSeat(s, log.WithField("seat", i))
	}
	return seats, nil
}
