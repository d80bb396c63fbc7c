package cards

// Play is one seat's card within a trick.
type Play struct {
	Seat int
	Card Card
}

// Trick holds the plays in order, starting with the leader.
type Trick struct {
	Plays []Play
}

func NewTrick() *Trick {
	return &Trick{}
}

func (t *Trick) String() string {
	return t.Cards().String()
}

func (t *Trick) Add(seat int, c Card) {
	t.Plays = append(t.Plays, Play{Seat: seat, Card: c})
}

func (t *Trick) Size() int {
	return len(t.Plays)
}

func (t *Trick) Cards() Cards {
	cs := make(Cards, 0, len(t.Plays))
	for _, p := range t.Plays {
		cs = append(cs, p.Card)
	}
	return cs
}

// Copy returns an independent trick with the same plays.
func (t *Trick) Copy() *Trick {
	plays := make([]Play, len(t.Plays))
	copy(plays, t.Plays)
	return &Trick{Plays: plays}
}

// Returns false if no such card.
func (t *Trick) LeadSuit() (Suit, bool) {
	if len(t.Plays) > 0 {
		return t.Plays[0].Card.Suit, true
	}
	return Clubs, false
}

// Leader is the seat that played first, or -1 for an empty trick.
func (t *Trick) Leader() int {
	if len(t.Plays) == 0 {
		return -1
	}
	return t.Plays[0].Seat
}

// Winner returns the winning play: the highest card of the lead suit.
// If nobody followed the lead suit the leader wins. An empty trick returns false.
func (t *Trick) Winner() (Play, bool) {
	if len(t.Plays) == 0 {
		return Play{}, false
	}
	leadSuit := t.Plays[0].Card.Suit
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if p.Card.Suit == leadSuit && p.Card.Value > best.Card.Value {
			best = p
		}
	}
	return best, true
}

// Points is the total penalty value in the trick.
func (t *Trick) Points() int {
	return t.Cards().Points()
}
