package strategy

import (
	"math/rand"
	"sync"
	"time"
)

// Random picks uniformly among the allowed cards.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom uses rng, or a time-seeded source when rng is nil.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Random{rng: rng}
}

func (r *Random) ChoosePass(hand Hand, ctx PassContext) []string {
	var all []string
	for _, group := range hand {
		all = append(all, group...)
	}
	r.mu.Lock()
	r.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	r.mu.Unlock()
	if len(all) > 3 {
		all = all[:3]
	}
	return all
}

func (r *Random) ChooseLead(hand Hand, ctx LeadContext) string {
	return r.pick(ctx.Legal)
}

func (r *Random) ChooseFollow(hand Hand, ctx FollowContext) string {
	return r.pick(ctx.Legal)
}

func (r *Random) pick(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return tokens[r.rng.Intn(len(tokens))]
}
