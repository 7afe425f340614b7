package catalog

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXLayout describes where LoadXLSX finds the menu in a workbook.
type XLSXLayout struct {
	ItemsSheet      string // name | toppings | mnemonic
	CategoriesSheet string // category title | topping
	StartRow        int    // 1-based; rows above are headers
}

// DefaultXLSXLayout returns the layout the built-in export uses.
func DefaultXLSXLayout() XLSXLayout {
	return XLSXLayout{
		ItemsSheet:      "Pizzas",
		CategoriesSheet: "Toppings",
		StartRow:        2,
	}
}

// LoadXLSX reads a menu from an Excel workbook using DefaultXLSXLayout.
func LoadXLSX(path string) (*Catalog, error) {
	return LoadXLSXWithLayout(path, DefaultXLSXLayout())
}

func LoadXLSXWithLayout(path string, layout XLSXLayout) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open workbook: %w", err)
	}
	defer f.Close()

	itemRows, err := f.GetRows(layout.ItemsSheet)
	if err != nil {
		return nil, fmt.Errorf("catalog: read sheet %q: %w", layout.ItemsSheet, err)
	}
	var items []Item
	for i, row := range itemRows {
		if i < layout.StartRow-1 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		it := Item{Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			it.Toppings = splitToppings(row[1])
		}
		if len(row) > 2 {
			it.Mnemonic = strings.TrimSpace(row[2])
		}
		items = append(items, it)
	}

	// The categories sheet is optional; without it every topping is uncategorised.
	var categories []Category
	if hasSheet(f, layout.CategoriesSheet) {
		catRows, err := f.GetRows(layout.CategoriesSheet)
		if err != nil {
			return nil, fmt.Errorf("catalog: read sheet %q: %w", layout.CategoriesSheet, err)
		}
		order := map[string]int{}
		for i, row := range catRows {
			if i < layout.StartRow-1 || len(row) < 2 {
				continue
			}
			title, topping := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
			if title == "" || topping == "" {
				continue
			}
			idx, ok := order[title]
			if !ok {
				idx = len(categories)
				order[title] = idx
				categories = append(categories, Category{Title: title})
			}
			categories[idx].Toppings = append(categories[idx].Toppings, topping)
		}
	}
	return New(items, categories)
}

func splitToppings(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool { return r == ';' || r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}
