package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mpsalisbury/penaltyhearts/internal/config"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/player"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts/strategy"
	"github.com/sirupsen/logrus"
)

var (
	seat  = flag.Int("seat", 0, "Your seat at the table")
	hints = flag.String("hints", "basic", "Strategy that suggests your plays, empty for none")
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runSolo(ctx, cfg); err != nil {
		logrus.Fatal(err)
	}
}

func runSolo(ctx context.Context, cfg config.Config) error {
	if *seat < 0 || *seat >= game.NumSeats {
		return fmt.Errorf("seat %d: %w", *seat, config.ErrBadConfig)
	}
	var suggest strategy.Strategy
	if *hints != "" {
		s, err := strategy.ByName(*hints, nil)
		if err != nil {
			return err
		}
		suggest = s
	}
	cfg.Strategies[*seat] = player.TerminalKind
	log := cfg.Logger()
	rng := cfg.Rand()

	bots, err := cfg.Bots(rng, log)
	if err != nil {
		return err
	}
	human := player.NewExternalSeat(suggest)
	term := player.NewTerminal(human, *seat, nil)
	seats := make([]hearts.Seat, 0, len(bots))
	for i, b := range bots {
		switch {
		case i == *seat:
			seats = append(seats, human)
		case b == nil:
			return fmt.Errorf("seat %d: only one terminal seat is supported", i)
		default:
			seats = append(seats, b)
		}
	}

	g, err := hearts.NewGame(seats, game.Reporters{term, game.NewLogReporter(log)}, cfg.Table(rng, log))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	served := make(chan error, 1)
	go func() {
		// Stop the game once input closes.
		served <- term.Serve(ctx)
		cancel()
	}()

	_, err = g.Run(ctx)
	cancel()
	if serr := <-served; !errors.Is(serr, context.Canceled) {
		return serr
	}
	return err
}
