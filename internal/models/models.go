// Package models defines the core domain types for carcare.
package models

// Category selects a maintenance rule set.
type Category string

const (
	CategoryCompactCar Category = "Compact Car"
	CategorySedan      Category = "Sedan"
	CategorySUV        Category = "SUV"
)

// Priority is the conventional urgency of a maintenance item.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// VehicleProfile describes the car a session is tracking. It is never persisted.
type VehicleProfile struct {
	Category   Category `json:"category"`
	ModelYear  int      `json:"model_year"`
	OdometerKm int      `json:"odometer_km"`
}

// Task is one maintenance item on the user's list.
//
// ID is assigned in memory only; the task file identifies records by position.
type Task struct {
	ID          string `json:"id"`
	Item        string `json:"item"`
	Priority    string `json:"priority"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// Status returns the display label for the task's completion state.
func (t Task) Status() string {
	if t.Completed {
		return "Done"
	}
	return "Pending"
}

// Recommendation is a suggested task produced by the schedule engine.
type Recommendation struct {
	Item        string   `json:"item"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// Task converts the recommendation into a pending task.
func (r Recommendation) Task() Task {
	return Task{
		Item:        r.Item,
		Priority:    string(r.Priority),
		Description: r.Description,
	}
}
