package quiz

import (
	"errors"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
)

// HistoryLimit is how many quizzed items a user remembers.
const HistoryLimit = 5

var (
	// ErrNoCurrentItem means a submission arrived before any item was selected.
	ErrNoCurrentItem = errors.New("no current item selected")
	// ErrUnknownItem means the current pointer names an item the catalog does not have.
	ErrUnknownItem = errors.New("current item is not in the catalog")
)

// UserState is one user's learning record.
type UserState struct {
	Views   map[string]int `json:"views"`
	Correct map[string]int `json:"correct"`
	Wrong   map[string]int `json:"wrong"`
	History []string       `json:"history"`
	Current *string        `json:"current,omitempty"` // nil until the first selection
}

// NewUserState returns a fresh record with zero counters for every item.
func NewUserState(c *catalog.Catalog) UserState {
	s := UserState{
		Views:   make(map[string]int, c.Len()),
		Correct: make(map[string]int, c.Len()),
		Wrong:   make(map[string]int, c.Len()),
		History: []string{},
	}
	for _, name := range c.Names() {
		s.Views[name] = 0
		s.Correct[name] = 0
		s.Wrong[name] = 0
	}
	return s
}

// Normalize fills in counters for items added to the catalog after the
// record was created, clamps negative counters to zero and enforces the
// history bound.
func (s *UserState) Normalize(c *catalog.Catalog) {
	if s.Views == nil {
		s.Views = map[string]int{}
	}
	if s.Correct == nil {
		s.Correct = map[string]int{}
	}
	if s.Wrong == nil {
		s.Wrong = map[string]int{}
	}
	if s.History == nil {
		s.History = []string{}
	}
	for _, name := range c.Names() {
		if _, ok := s.Views[name]; !ok {
			s.Views[name] = 0
		}
		if _, ok := s.Correct[name]; !ok {
			s.Correct[name] = 0
		}
		if _, ok := s.Wrong[name]; !ok {
			s.Wrong[name] = 0
		}
	}
	for _, m := range []map[string]int{s.Views, s.Correct, s.Wrong} {
		for name, n := range m {
			if n < 0 {
				m[name] = 0
			}
		}
	}
	s.truncateHistory()
}

// CurrentItem reports the item currently shown, if any.
func (s UserState) CurrentItem() (string, bool) {
	if s.Current == nil {
		return "", false
	}
	return *s.Current, true
}

func (s *UserState) setCurrent(name string) {
	s.Current = &name
}

// PushHistory appends name and drops the oldest entries beyond HistoryLimit.
func (s *UserState) PushHistory(name string) {
	s.History = append(s.History, name)
	s.truncateHistory()
}

func (s *UserState) truncateHistory() {
	if n := len(s.History); n > HistoryLimit {
		s.History = append([]string(nil), s.History[n-HistoryLimit:]...)
	}
}

// Recent returns the last min(HistoryLimit, len(History)) entries.
func (s UserState) Recent() []string {
	h := s.History
	if len(h) > HistoryLimit {
		h = h[len(h)-HistoryLimit:]
	}
	return h
}

// Clone returns a deep copy.
func (s UserState) Clone() UserState {
	out := UserState{
		Views:   cloneCounts(s.Views),
		Correct: cloneCounts(s.Correct),
		Wrong:   cloneCounts(s.Wrong),
		History: append([]string{}, s.History...),
	}
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	return out
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
