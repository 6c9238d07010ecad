// Package schedule maps vehicle profiles to prioritized maintenance tasks.
package schedule

import (
	"fmt"

	"github.com/fentz26/carcare/internal/models"
)

const (
	// AgeThresholdYears is the age above which a car needs closer attention.
	AgeThresholdYears = 5
	// MileageThresholdKm is the odometer reading above which a car needs closer attention.
	MileageThresholdKm = 100000
	// HeavyUseSuffix is appended to rule descriptions for old or high-mileage cars.
	HeavyUseSuffix = " - Requires more frequent maintenance due to car age/mileage"
)

// Engine produces recommendations from a read-only rule table.
type Engine struct {
	table Table
}

// NewEngine creates an engine over table. The table must not be modified afterwards.
func NewEngine(table Table) *Engine {
	return &Engine{table: table}
}

// Recommend returns the rules for category in declared order, annotating
// descriptions when the car is older than five years or past 100,000 km.
func (e *Engine) Recommend(category models.Category, modelYear, odometerKm, currentYear int) ([]models.Recommendation, error) {
	rules, ok := e.table[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	heavyUse := NeedsFrequentMaintenance(modelYear, odometerKm, currentYear)
	recs := make([]models.Recommendation, 0, len(rules))
	for _, r := range rules {
		desc := r.Description
		if heavyUse {
			desc += HeavyUseSuffix
		}
		recs = append(recs, models.Recommendation{
			Item:        r.Item,
			Priority:    r.Priority,
			Description: desc,
		})
	}
	return recs, nil
}

// RecommendFor is Recommend for a vehicle profile.
func (e *Engine) RecommendFor(v models.VehicleProfile, currentYear int) ([]models.Recommendation, error) {
	return e.Recommend(v.Category, v.ModelYear, v.OdometerKm, currentYear)
}

// Knows reports whether the table has rules for category.
func (e *Engine) Knows(category models.Category) bool {
	_, ok := e.table[category]
	return ok
}

// NeedsFrequentMaintenance reports whether the age or mileage thresholds are exceeded.
func NeedsFrequentMaintenance(modelYear, odometerKm, currentYear int) bool {
	return currentYear-modelYear > AgeThresholdYears || odometerKm > MileageThresholdKm
}
