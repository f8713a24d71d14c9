package domain

import "fmt"

// Category classifies a node's subject area
type Category string

const (
	CategoryMechanics        Category = "mechanics"
	CategoryElectromagnetism Category = "electromagnetism"
	CategoryThermodynamics   Category = "thermodynamics"
	CategoryMath             Category = "math"
	CategoryDefault          Category = "default"
)

// Categories lists every category in the order the editor offers them
var Categories = []Category{
	CategoryDefault,
	CategoryMechanics,
	CategoryElectromagnetism,
	CategoryThermodynamics,
	CategoryMath,
}

// categoryTitles are the human-readable names shown in the category selector
var categoryTitles = map[Category]string{
	CategoryDefault:          "Uncategorized",
	CategoryMechanics:        "Mechanics",
	CategoryElectromagnetism: "Electromagnetism",
	CategoryThermodynamics:   "Thermodynamics",
	CategoryMath:             "Math / Definitions",
}

// Valid reports whether c is one of the five defined categories
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title returns the display name of the category
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return categoryTitles[CategoryDefault]
}

// ParseCategory converts a string to a Category, rejecting unknown values
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
