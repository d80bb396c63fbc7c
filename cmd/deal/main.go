package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"strconv"

	"github.com/mpsalisbury/penaltyhearts/internal/config"
	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/player"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

// Overrides the configured players at every seat when set.
var playerType string

func init() {
	player.AddPlayerFlag(flag.CommandLine, &playerType, "type")
}

// Deals one hand per seat and shows what each seat's strategy would pass.
func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	if err := showDeal(cfg); err != nil {
		logrus.Fatal(err)
	}
}

func showDeal(cfg config.Config) error {
	log := cfg.Logger()
	rng := cfg.Rand()
	hands := cards.Deal(game.NumSeats, rng)

	data := pterm.TableData{{"Seat", "Player", "Hand", "Points", "Passes", "To"}}
	for seat, hand := range hands {
		kind, s, err := seatBot(cfg, seat, rng, log)
		if err != nil {
			return err
		}
		req := hearts.PassRequest{Seat: seat, Target: hearts.PassTarget(seat), Round: 1, Hand: hand}
		passed, err := s.RequestPass(context.Background(), req)
		if err != nil {
			log.WithError(err).WithField("seat", seat).Warn("pass fell back")
		}
		data = append(data, []string{
			strconv.Itoa(seat),
			kind,
			hand.HandString(),
			strconv.Itoa(hand.Points()),
			passed.String(),
			strconv.Itoa(req.Target),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func seatBot(cfg config.Config, seat int, rng *rand.Rand, log logrus.FieldLogger) (string, *player.BotSeat, error) {
	if kind := cfg.Strategies[seat]; playerType == "" && kind != player.TerminalKind {
		s, err := cfg.Strategy(seat, rng)
		if err != nil {
			return kind, nil, err
		}
		return kind, player.NewBotSeat(s, log), nil
	}
	// Terminal seats are shown with the default bot.
	b, err := player.NewBotFromFlag(playerType, rng, log)
	if playerType == "" {
		return "basic", b, err
	}
	return playerType, b, err
}
