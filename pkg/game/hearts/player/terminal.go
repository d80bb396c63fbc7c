package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mpsalisbury/penaltyhearts/pkg/cards"
	"github.com/mpsalisbury/penaltyhearts/pkg/game"
	"github.com/mpsalisbury/penaltyhearts/pkg/game/hearts"
	"github.com/pterm/pterm"
)

// Prompt reads one line of input, offering def as the default answer.
type Prompt func(text, def string) (string, error)

func interactivePrompt(text, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(text).WithDefaultValue(def).Show()
}

// Terminal answers an ExternalSeat's requests from the keyboard and shows the
// table as it plays out.
type Terminal struct {
	game.UnimplementedReporter
	seat   *ExternalSeat
	index  int
	prompt Prompt
}

// NewTerminal drives seat, which sits at table position index. A nil prompt
// reads interactively from the terminal.
func NewTerminal(seat *ExternalSeat, index int, prompt Prompt) *Terminal {
	if prompt == nil {
		prompt = interactivePrompt
	}
	return &Terminal{seat: seat, index: index, prompt: prompt}
}

// Serve answers requests until ctx is done.
func (t *Terminal) Serve(ctx context.Context) error {
	for {
		select {
		case r := <-t.seat.Requests():
			if err := t.handle(r); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *Terminal) handle(r Request) error {
	if p, ok := t.seat.Pending(); !ok || p.Id != r.Id {
		// Timed out before we got to it.
		return nil
	}
	pterm.Println(showRequest(r))
	for {
		text := "Enter card to play"
		if r.Kind == game.SelectPass {
			text = "Enter three cards to pass"
		}
		in, err := t.prompt(text, r.Suggested.String())
		if err != nil {
			_ = t.seat.Cancel(r.Id)
			return err
		}
		chosen, err := parseSelection(in, r)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if err := t.seat.Resolve(r.Id, chosen); err != nil {
			pterm.Warning.Println("Too late, the table moved on.")
		}
		return nil
	}
}

func parseSelection(in string, r Request) (cards.Cards, error) {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		fields = r.Suggested.Strings()
	}
	chosen, err := cards.ParseCards(fields)
	if err != nil {
		return nil, err
	}
	if len(chosen) != r.Count {
		return nil, fmt.Errorf("choose exactly %d cards", r.Count)
	}
	for i, c := range chosen {
		if !r.Legal.ContainsCard(c) {
			return nil, fmt.Errorf("can't play %s, choose from %s", c, r.Legal)
		}
		if chosen[:i].ContainsCard(c) {
			return nil, fmt.Errorf("%s chosen twice", c)
		}
	}
	return chosen, nil
}

func showRequest(r Request) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Your hand: %s\n", r.Hand.HandString()))
	if r.Kind == game.SelectCard {
		sb.WriteString(fmt.Sprintf("Trick so far: %s\n", r.Trick))
		sb.WriteString(fmt.Sprintf("Legal plays: %s", r.Legal))
	}
	return pterm.DefaultBox.WithTitle("Seat " + strconv.Itoa(r.Seat)).Sprint(sb.String())
}

func (t *Terminal) ReportRoundStarted(g game.Game, dealer, leader int) {
	pterm.DefaultSection.Printfln("Round %d: seat %d deals, seat %d leads", g.RoundNumber(), dealer, leader)
}

func (t *Terminal) ReportPassCompleted(g game.Game, passed [game.NumSeats]cards.Cards) {
	for seat, cs := range passed {
		if hearts.PassTarget(seat) == t.index {
			pterm.Info.Printfln("Seat %d passed you %s", seat, cs)
		}
	}
}

func (t *Terminal) ReportTrickCompleted(g game.Game, trick cards.Cards, winner, points int) {
	pterm.Printfln("Trick: %s won by seat %d (%d points)", trick, winner, points)
}

func (t *Terminal) ReportScoresUpdated(g game.Game, roundPoints, scores [game.NumSeats]int) {
	data := pterm.TableData{{"Seat", "Round", "Total"}}
	for seat := range scores {
		data = append(data, []string{strconv.Itoa(seat), strconv.Itoa(roundPoints[seat]), strconv.Itoa(scores[seat])})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (t *Terminal) ReportSelectionFailed(g game.Game, seat int, kind game.SelectionKind, err error) {
	if seat == t.index {
		pterm.Warning.Printfln("No %s from you in time, played for you: %v", kind, err)
	}
}

func (t *Terminal) ReportGameFinished(g game.Game, loser int) {
	if loser == t.index {
		pterm.Error.Printfln("Game over. You lost with %d points.", g.Scores()[loser])
		return
	}
	pterm.Success.Printfln("Game over. Seat %d lost with %d points.", loser, g.Scores()[loser])
}
