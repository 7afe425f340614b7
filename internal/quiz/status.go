package quiz

import "github.com/mind-engage/pizzaquiz/internal/catalog"

// MasteredThreshold is the number of exact answers that marks an item mastered.
const MasteredThreshold = 3

// Status buckets every catalog item by its correct-answer count.
type Status struct {
	Mastered []string `json:"mastered"`
	Learning []string `json:"learning"`
	NeedHelp []string `json:"need_help"`
}

// Summarize is a read-only projection; buckets keep catalog order.
func Summarize(c *catalog.Catalog, s UserState) Status {
	st := Status{Mastered: []string{}, Learning: []string{}, NeedHelp: []string{}}
	for _, name := range c.Names() {
		switch n := s.Correct[name]; {
		case n >= MasteredThreshold:
			st.Mastered = append(st.Mastered, name)
		case n > 0:
			st.Learning = append(st.Learning, name)
		default:
			st.NeedHelp = append(st.NeedHelp, name)
		}
	}
	return st
}
