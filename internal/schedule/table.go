package schedule

import (
	"fmt"

	"github.com/fentz26/carcare/internal/models"
)

// Rule is a static maintenance item for a vehicle category.
type Rule struct {
	Item        string          `yaml:"item" toml:"item"`
	Priority    models.Priority `yaml:"priority" toml:"priority"`
	Description string          `yaml:"description" toml:"description"`
}

// Table maps each vehicle category to its ordered rules.
type Table map[models.Category][]Rule

// categoryOrder is the display order used in prompts and listings.
var categoryOrder = []models.Category{
	models.CategoryCompactCar,
	models.CategorySedan,
	models.CategorySUV,
}

// DefaultTable returns the built-in maintenance schedule.
func DefaultTable() Table {
	return Table{
		models.CategoryCompactCar: {
			{Item: "Engine Oil", Priority: models.PriorityHigh, Description: "Replace every 15,000 km or 1 year, whichever comes first"},
			{Item: "Brake Pads", Priority: models.PriorityMedium, Description: "Check every 20,000 km or 2 years"},
			{Item: "Tires", Priority: models.PriorityMedium, Description: "Replace every 50,000 km"},
		},
		models.CategorySedan: {
			{Item: "Engine Oil", Priority: models.PriorityHigh, Description: "Replace every 10,000 km or 1 year, whichever comes first"},
			{Item: "Brake Pads", Priority: models.PriorityMedium, Description: "Check every 30,000 km or 2 years"},
			{Item: "Tires", Priority: models.PriorityMedium, Description: "Replace every 60,000 km"},
		},
		models.CategorySUV: {
			{Item: "Engine Oil", Priority: models.PriorityHigh, Description: "Replace every 7,500 km or 1 year, whichever comes first"},
			{Item: "Brake Pads", Priority: models.PriorityMedium, Description: "Check every 25,000 km or 2 years"},
			{Item: "Tires", Priority: models.PriorityMedium, Description: "Replace every 40,000 km"},
		},
	}
}

// WithOverrides returns a copy of t where each category present in overrides
// has its rules replaced. Categories must be exact matches of the known set.
func (t Table) WithOverrides(overrides map[string][]Rule) (Table, error) {
	out := make(Table, len(t))
	for cat, rules := range t {
		out[cat] = append([]Rule(nil), rules...)
	}
	for name, rules := range overrides {
		cat, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if len(rules) == 0 {
			return nil, fmt.Errorf("category %q: empty rule list", name)
		}
		out[cat] = append([]Rule(nil), rules...)
	}
	return out, nil
}

// Categories returns the known vehicle categories in display order.
func Categories() []models.Category {
	return append([]models.Category(nil), categoryOrder...)
}

// ParseCategory performs an exact, case-sensitive membership check.
func ParseCategory(s string) (models.Category, error) {
	for _, c := range categoryOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
