// Package garage is the session controller: it owns the task store, the
// recommendation engine and the vehicle profile for one run.
package garage

import (
	"fmt"
	"strings"

	"github.com/fentz26/carcare/internal/audit"
	"github.com/fentz26/carcare/internal/models"
	"github.com/fentz26/carcare/internal/schedule"
	"github.com/fentz26/carcare/internal/store"
)

// Service provides the task tracker operations used by the shell, the TUI
// and the one-shot commands.
type Service struct {
	store       *store.Store
	engine      *schedule.Engine
	audit       *audit.Recorder
	currentYear int
	vehicle     *models.VehicleProfile
}

// NewService creates a service. currentYear is fixed for the session.
func NewService(s *store.Store, engine *schedule.Engine, rec *audit.Recorder, currentYear int) *Service {
	return &Service{
		store:       s,
		engine:      engine,
		audit:       rec,
		currentYear: currentYear,
	}
}

// Store returns the underlying task store.
func (s *Service) Store() *store.Store {
	return s.store
}

// CurrentYear returns the year used for age calculations.
func (s *Service) CurrentYear() int {
	return s.currentYear
}

// --- Vehicle ---

// Vehicle returns the cached vehicle profile, if any.
func (s *Service) Vehicle() (models.VehicleProfile, bool) {
	if s.vehicle == nil {
		return models.VehicleProfile{}, false
	}
	return *s.vehicle, true
}

// SetVehicle caches the vehicle profile for the session.
func (s *Service) SetVehicle(v models.VehicleProfile) error {
	if !s.engine.Knows(v.Category) {
		return fmt.Errorf("%w: %q", schedule.ErrUnknownCategory, v.Category)
	}
	s.vehicle = &v
	s.audit.Record("vehicle.set", v, audit.OutcomeSuccess, nil)
	return nil
}

// Recommendations returns the maintenance items for the cached vehicle.
func (s *Service) Recommendations() ([]models.Recommendation, error) {
	if s.vehicle == nil {
		return nil, ErrNoVehicle
	}
	return s.engine.RecommendFor(*s.vehicle, s.currentYear)
}

// --- Task Operations ---

// Tasks returns the current task list.
func (s *Service) Tasks() []models.Task {
	return s.store.List()
}

// AddRecommendation appends the n-th (1-based) recommendation as a task.
func (s *Service) AddRecommendation(n int) (models.Task, error) {
	recs, err := s.Recommendations()
	if err != nil {
		return models.Task{}, err
	}
	if n < 1 || n > len(recs) {
		err := fmt.Errorf("%w: %d", ErrInvalidSelection, n)
		s.audit.Record("task.add_recommended", map[string]int{"n": n}, audit.OutcomeFailure, err)
		return models.Task{}, err
	}
	task := s.store.Append(recs[n-1].Task())
	s.audit.Record("task.add_recommended", map[string]interface{}{"n": n, "item": task.Item}, audit.OutcomeSuccess, nil)
	return task, nil
}

// AddCustom appends a user-defined task. Line breaks in the fields are
// replaced with spaces so one task stays one record in the task file.
func (s *Service) AddCustom(item, priority, description string) models.Task {
	item, priority, description = singleLine(item), singleLine(priority), singleLine(description)
	task := s.store.Append(models.Task{
		Item:        item,
		Priority:    priority,
		Description: description,
	})
	s.audit.Record("task.add_custom", map[string]string{"item": item, "priority": priority}, audit.OutcomeSuccess, nil)
	return task
}

// Complete marks the task at the 1-based index as completed.
func (s *Service) Complete(index int) (models.Task, error) {
	task, err := s.store.Complete(index)
	s.record("task.complete", map[string]int{"index": index}, err)
	return task, err
}

// Remove deletes the task at the 1-based index.
func (s *Service) Remove(index int) (models.Task, error) {
	task, err := s.store.Remove(index)
	s.record("task.remove", map[string]int{"index": index}, err)
	return task, err
}

// Save writes the task list back to the file it was loaded from.
func (s *Service) Save() error {
	err := s.store.Save(s.store.Path())
	s.record("task.save", map[string]string{"file": s.store.Path()}, err)
	return err
}

// Unsaved reports whether there are changes that Save has not written.
func (s *Service) Unsaved() bool {
	return s.store.Dirty()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

func (s *Service) record(action string, inputs interface{}, err error) {
	outcome := audit.OutcomeSuccess
	if err != nil {
		outcome = audit.OutcomeFailure
	}
	s.audit.Record(action, inputs, outcome, err)
}
