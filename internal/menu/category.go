package menu

import (
	"fmt"
)

// Category is the closed set of menu sections a dish can belong to.
type Category int

const (
	// CategoryUnknown is returned by Classify for labels outside the table.
	// It never appears in a Catalog.
	CategoryUnknown Category = iota
	LimitedTime
	Nigiri
	Gunkan
	SideMenu
	Drink
	Dessert
)

// Categories lists every known category in menu order.
var Categories = []Category{LimitedTime, Nigiri, Gunkan, SideMenu, Drink, Dessert}

// categoryLabels maps the section headings used on the menu site to categories.
var categoryLabels = map[string]Category{
	"期間限定":    LimitedTime,
	"にぎり":     Nigiri,
	"軍艦・巻物":   Gunkan,
	"サイドメニュー": SideMenu,
	"ドリンク":    Drink,
	"デザート":    Dessert,
}

// categoryNames are the names used in the persisted catalog file.
var categoryNames = map[Category]string{
	LimitedTime: "LimitedTime",
	Nigiri:      "Nigiri",
	Gunkan:      "Gunkan",
	SideMenu:    "SideMenu",
	Drink:       "Drink",
	Dessert:     "Desert",
}

// Classify maps a section heading to its category.
// Anything not in the table, including empty or whitespace-only labels,
// yields CategoryUnknown.
func Classify(label string) Category {
	if c, ok := categoryLabels[label]; ok {
		return c
	}
	return CategoryUnknown
}

// Label returns the Japanese section heading for the category.
func (c Category) Label() string {
	for label, cat := range categoryLabels {
		if cat == c {
			return label
		}
	}
	return ""
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("cannot encode category %d", int(c))
	}
	return []byte(name), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for cat, name := range categoryNames {
		if name == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category name %q", string(text))
}
