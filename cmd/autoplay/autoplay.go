package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"

	"github.com/mpsalisbury/penaltyhearts/internal/config"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

var verbose = flag.Bool("verbose", false, "Log every game event")

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runGames(ctx, cfg); err != nil {
		logrus.Fatal(err)
	}
}

type stats struct {
	losses [game.NumSeats]int
	points [game.NumSeats]int
	rounds int
}

func runGames(ctx context.Context, cfg config.Config) error {
	log := cfg.Logger()
	rng := cfg.Rand()
	var st stats
	for i := 0; i < cfg.Games; i++ {
		res, err := runGame(ctx, cfg, rng, log)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		st.losses[res.Loser]++
		st.rounds += res.Rounds
		for seat, s := range res.Scores {
			st.points[seat] += s
		}
		log.WithFields(logrus.Fields{"game": i + 1, "loser": res.Loser, "scores": res.Scores}).Info("game over")
	}
	return st.render(cfg)
}

func runGame(ctx context.Context, cfg config.Config, rng *rand.Rand, log *logrus.Logger) (hearts.Result, error) {
	bots, err := cfg.Bots(rng, log)
	if err != nil {
		return hearts.Result{}, err
	}
	seats := make([]hearts.Seat, 0, len(bots))
	for i, b := range bots {
		if b == nil {
			return hearts.Result{}, fmt.Errorf("seat %d: autoplay seats bots only", i)
		}
		seats = append(seats, b)
	}
	var reporter game.Reporter
	if *verbose {
		reporter = game.NewLogReporter(log)
	}
	g, err := hearts.NewGame(seats, reporter, cfg.Table(rng, log))
	if err != nil {
		return hearts.Result{}, err
	}
	return g.Run(ctx)
}

func (st stats) render(cfg config.Config) error {
	data := pterm.TableData{{"Seat", "Player", "Losses", "Avg score"}}
	for seat := range st.losses {
		avg := float64(st.points[seat]) / float64(cfg.Games)
		data = append(data, []string{
			strconv.Itoa(seat),
			cfg.Strategies[seat],
			strconv.Itoa(st.losses[seat]),
			strconv.FormatFloat(avg, 'f', 1, 64),
		})
	}
	pterm.DefaultSection.Printfln("%d games, %d rounds", cfg.Games, st.rounds)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
