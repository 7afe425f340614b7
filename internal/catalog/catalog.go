package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog   = errors.New("catalog has no items")
	ErrInvalidItem    = errors.New("invalid catalog item")
	ErrDuplicateItem  = errors.New("duplicate catalog item")
	ErrInvalidTopping = errors.New("invalid topping")
)

// UncategorizedTitle heads the section that collects toppings which belong
// to no category.
const UncategorizedTitle = "Other"

// Item is a pizza and the toppings it is made of.
type Item struct {
	Name     string   `json:"name"`
	Toppings []string `json:"toppings"`
	Mnemonic string   `json:"mnemonic,omitempty"`
}

// Category groups toppings for display only.
type Category struct {
	Title    string   `json:"title"`
	Toppings []string `json:"toppings"`
}

// Section is one rendered group of toppings.
type Section struct {
	Title    string   `json:"title"`
	Toppings []string `json:"toppings"`
}

// Catalog is read-only once built.
type Catalog struct {
	items      []Item
	byName     map[string]int
	categories []Category
	categoryOf map[string]int
}

// New validates items and categories and builds a Catalog.
func New(items []Item, categories []Category) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		items:      make([]Item, 0, len(items)),
		byName:     make(map[string]int, len(items)),
		categories: make([]Category, 0, len(categories)),
		categoryOf: map[string]int{},
	}
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidItem)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, name)
		}
		seen := make(map[string]struct{}, len(it.Toppings))
		toppings := make([]string, 0, len(it.Toppings))
		for _, t := range it.Toppings {
			t = strings.TrimSpace(t)
			if t == "" {
				return nil, fmt.Errorf("%w: empty topping on %q", ErrInvalidTopping, name)
			}
			if _, dup := seen[t]; dup {
				return nil, fmt.Errorf("%w: %q listed twice on %q", ErrInvalidTopping, t, name)
			}
			seen[t] = struct{}{}
			toppings = append(toppings, t)
		}
		c.byName[name] = len(c.items)
		c.items = append(c.items, Item{Name: name, Toppings: toppings, Mnemonic: it.Mnemonic})
	}
	for _, cat := range categories {
		idx := len(c.categories)
		toppings := make([]string, 0, len(cat.Toppings))
		for _, t := range cat.Toppings {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if prev, ok := c.categoryOf[t]; ok {
				return nil, fmt.Errorf("%w: %q is in both %q and %q",
					ErrInvalidTopping, t, c.categories[prev].Title, cat.Title)
			}
			c.categoryOf[t] = idx
			toppings = append(toppings, t)
		}
		c.categories = append(c.categories, Category{Title: cat.Title, Toppings: toppings})
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.clone()
	}
	return out
}

// Item returns the i-th item in catalog order.
func (c *Catalog) Item(i int) Item { return c.items[i].clone() }

func (c *Catalog) Names() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.Name
	}
	return out
}

func (c *Catalog) Lookup(name string) (Item, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Item{}, false
	}
	return c.items[i].clone(), true
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Title: cat.Title, Toppings: append([]string(nil), cat.Toppings...)}
	}
	return out
}

// Sections groups an item's toppings by category, in category order,
// skipping categories the item does not use. Toppings outside every
// category end up in a trailing UncategorizedTitle section.
func (c *Catalog) Sections(it Item) []Section {
	buckets := make([][]string, len(c.categories))
	var loose []string
	for _, t := range it.Toppings {
		if idx, ok := c.categoryOf[t]; ok {
			buckets[idx] = append(buckets[idx], t)
			continue
		}
		loose = append(loose, t)
	}
	var out []Section
	for i, b := range buckets {
		if len(b) > 0 {
			out = append(out, Section{Title: c.categories[i].Title, Toppings: b})
		}
	}
	if len(loose) > 0 {
		out = append(out, Section{Title: UncategorizedTitle, Toppings: loose})
	}
	return out
}

// QuizSections lays out every category with all of its toppings, followed
// by any uncategorised topping used by some item.
func (c *Catalog) QuizSections() []Section {
	out := make([]Section, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		out = append(out, Section{Title: cat.Title, Toppings: append([]string(nil), cat.Toppings...)})
	}
	seen := map[string]struct{}{}
	var loose []string
	for _, it := range c.items {
		for _, t := range it.Toppings {
			if _, ok := c.categoryOf[t]; ok {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			loose = append(loose, t)
		}
	}
	if len(loose) > 0 {
		out = append(out, Section{Title: UncategorizedTitle, Toppings: loose})
	}
	return out
}

func (it Item) clone() Item {
	it.Toppings = append([]string(nil), it.Toppings...)
	return it
}
