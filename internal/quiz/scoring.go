package quiz

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
)

// Outcome partitions picked ∪ actual into three sorted, disjoint lists.
type Outcome struct {
	Correct []string `json:"correct"` // actual ∩ picked
	Missed  []string `json:"missed"`  // actual − picked
	Extra   []string `json:"extra"`   // picked − actual
	Exact   bool     `json:"exact"`
}

// Grade compares a submitted topping set against the true one. Order and
// duplicates in either slice carry no meaning. Only an exact set match is
// correct; there is no partial credit.
func Grade(actual, picked []string) Outcome {
	a := lo.Uniq(actual)
	p := lo.Uniq(picked)

	out := Outcome{
		Correct: sorted(lo.Intersect(a, p)),
		Missed:  sorted(lo.Without(a, p...)),
		Extra:   sorted(lo.Without(p, a...)),
	}
	out.Exact = len(out.Missed) == 0 && len(out.Extra) == 0
	return out
}

func sorted(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}

// Submit grades picked against the user's current item and records the
// result: one correct or wrong tally and a history entry. The state is left
// untouched when the precondition fails.
func Submit(c *catalog.Catalog, s *UserState, picked []string) (catalog.Item, Outcome, error) {
	name, ok := s.CurrentItem()
	if !ok {
		return catalog.Item{}, Outcome{}, ErrNoCurrentItem
	}
	it, ok := c.Lookup(name)
	if !ok {
		return catalog.Item{}, Outcome{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}

	out := Grade(it.Toppings, picked)
	if s.Correct == nil {
		s.Correct = map[string]int{}
	}
	if s.Wrong == nil {
		s.Wrong = map[string]int{}
	}
	if out.Exact {
		s.Correct[it.Name]++
	} else {
		s.Wrong[it.Name]++
	}
	s.PushHistory(it.Name)
	return it, out, nil
}
