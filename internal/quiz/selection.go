package quiz

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
)

// Rand is the random source the selector draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weight is the Laplace-smoothed error rate (wrong+1)/(correct+wrong+2).
// Never-attempted items weigh 0.5. Negative counts are treated as zero.
func Weight(correct, wrong int) float64 {
	correct, wrong = max(correct, 0), max(wrong, 0)
	return float64(wrong+1) / float64(correct+wrong+2)
}

// WeightedPick draws an index with probability proportional to its weight.
// It returns -1 when there is nothing to draw from.
func WeightedPick(weights []float64, r Rand) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if len(weights) == 0 || total <= 0 {
		return -1
	}
	u := r.Float64() * total
	cum := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if u < cum {
			return i
		}
	}
	// u can only reach total through rounding.
	return last
}

// Candidates returns the items eligible in quiz mode: everything not in
// the recent history, or the whole catalog when that would leave nothing.
func Candidates(c *catalog.Catalog, s UserState) []catalog.Item {
	recent := lo.KeyBy(s.Recent(), func(name string) string { return name })
	items := c.Items()
	out := lo.Filter(items, func(it catalog.Item, _ int) bool {
		_, seen := recent[it.Name]
		return !seen
	})
	if len(out) == 0 {
		return items
	}
	return out
}

// Weights returns the quiz weight of each candidate, in order.
func Weights(s UserState, candidates []catalog.Item) []float64 {
	return lo.Map(candidates, func(it catalog.Item, _ int) float64 {
		return Weight(s.Correct[it.Name], s.Wrong[it.Name])
	})
}

// Selector picks the next item to show. It is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng Rand
}

func NewSelector(r Rand) *Selector {
	if r == nil {
		r = NewRand(0)
	}
	return &Selector{rng: r}
}

// Review picks uniformly from the full catalog, counts a view and makes
// the pick current.
func (sel *Selector) Review(c *catalog.Catalog, s *UserState) catalog.Item {
	sel.mu.Lock()
	i := sel.rng.IntN(c.Len())
	sel.mu.Unlock()

	it := c.Item(i)
	if s.Views == nil {
		s.Views = map[string]int{}
	}
	s.Views[it.Name]++
	s.setCurrent(it.Name)
	return it
}

// Quiz draws from the non-recent candidates weighted by error rate and
// makes the pick current. Views are not counted.
func (sel *Selector) Quiz(c *catalog.Catalog, s *UserState) catalog.Item {
	candidates := Candidates(c, *s)
	weights := Weights(*s, candidates)

	sel.mu.Lock()
	i := WeightedPick(weights, sel.rng)
	if i < 0 {
		i = sel.rng.IntN(len(candidates))
	}
	sel.mu.Unlock()

	it := candidates[i]
	s.setCurrent(it.Name)
	return it
}
