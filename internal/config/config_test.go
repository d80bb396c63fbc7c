package config

import (
	"flag"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/player"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "missing.env")
	return Load(flag.NewFlagSet("test", flag.ContinueOnError), args, missing)
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, hearts.DefaultScoreLimit, c.ScoreLimit)
	assert.Equal(t, logrus.InfoLevel, c.Logger().GetLevel())
}

func TestPrecedence(t *testing.T) {
	env := writeFile(t, ".env", "HEARTS_GAMES=7\nHEARTS_SEED=3\n")
	t.Cleanup(func() {
		os.Unsetenv("HEARTS_GAMES")
		os.Unsetenv("HEARTS_SEED")
	})
	t.Setenv("HEARTS_SEED", "5")
	t.Setenv("HEARTS_DECISION_TIMEOUT", "2s")
	t.Setenv("HEARTS_PLAYERS", "prob")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c, err := Load(fs, []string{"-limit", "50", "-players", "basic,prob,term,random"}, env)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Games, "from .env")
	assert.Equal(t, int64(5), c.Seed, "environment beats .env")
	assert.Equal(t, 2*time.Second, c.DecisionTimeout)
	assert.Equal(t, 50, c.ScoreLimit, "flags beat everything")
	assert.Equal(t, [4]string{"basic", "prob", player.TerminalKind, "random"}, c.Strategies)
}

func TestEnvironmentPlayers(t *testing.T) {
	t.Setenv("HEARTS_PLAYERS", " Team ")
	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, [4]string{"team", "team", "team", "team"}, c.Strategies)
}

func TestBadConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad limit", map[string]string{"HEARTS_SCORE_LIMIT": "lots"}, nil},
		{"bad timeout", map[string]string{"HEARTS_DECISION_TIMEOUT": "soon"}, nil},
		{"zero limit", nil, []string{"-limit", "0"}},
		{"zero games", nil, []string{"-games", "0"}},
		{"bad level", nil, []string{"-log", "loud"}},
		{"two players", nil, []string{"-players", "basic,prob"}},
		{"unknown player", nil, []string{"-players", "shooter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t, tt.args...)
			assert.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestWeightsFileOverridesPreset(t *testing.T) {
	c := Default()
	c.WeightsFile = writeFile(t, "weights.json", `{"queenDanger": 250, "teamPlay": true}`)

	w, err := c.Weights("prob")
	require.NoError(t, err)
	want := strategy.ProbabilisticWeights()
	want.QueenDanger = 250
	want.TeamPlay = true
	assert.Equal(t, want, w)

	c.WeightsFile = writeFile(t, "bad.json", `{"queenDanger": "high"}`)
	_, err = c.Weights("basic")
	assert.ErrorIs(t, err, ErrBadConfig)

	_, err = c.Weights("random")
	assert.ErrorIs(t, err, strategy.ErrUnknownStrategy)
}

func TestBots(t *testing.T) {
	c := Default()
	c.Strategies = [4]string{"basic", player.TerminalKind, "random", "team"}
	log, _ := test.NewNullLogger()

	seats, err := c.Bots(rand.New(rand.NewSource(1)), log)
	require.NoError(t, err)
	assert.NotNil(t, seats[0])
	assert.Nil(t, seats[1])
	assert.NotNil(t, seats[2])
	assert.NotNil(t, seats[3])

	_, err = c.Strategy(1, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
	s, err := c.Strategy(3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, strategy.TeamWeights(), s.(*strategy.Heuristic).Weights())
}

func TestTable(t *testing.T) {
	c := Default()
	c.ScoreLimit = 60
	rng := rand.New(rand.NewSource(1))
	tc := c.Table(rng, nil)
	assert.Equal(t, 60, tc.ScoreLimit)
	assert.Equal(t, hearts.DefaultDecisionTimeout, tc.DecisionTimeout)
	assert.Same(t, rng, tc.Rand)
}
