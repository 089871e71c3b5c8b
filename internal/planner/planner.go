// Package planner owns the global event calendar and to-do list. Both are
// shared across months: events key on literal YYYY-MM-DD dates, tasks form
// one flat list.
package planner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"lifeos/internal/calendar"
	"lifeos/internal/models"
	"lifeos/internal/store"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrBadDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrTitleRequired = errors.New("event title is required")
	ErrTextRequired  = errors.New("task text is required")
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DefaultEventTime is used when an event is created without a time.
const DefaultEventTime = "All Day"

// defaultEventColor mirrors the first tag of the original palette.
const defaultEventColor = "bg-neutral-900"

type Service struct {
	records *store.RecordStore
	now     func() time.Time
}

func NewService(records *store.RecordStore) *Service {
	return &Service{records: records, now: time.Now}
}

func validateDate(date string) error {
	if !dateKeyPattern.MatchString(date) {
		return fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return nil
}

// Events returns the whole date-keyed event map.
func (s *Service) Events(ctx context.Context) (map[string][]models.PlannerEvent, error) {
	return s.loadEvents(ctx)
}

// EventsOn returns the ordered events of one day.
func (s *Service) EventsOn(ctx context.Context, date string) ([]models.PlannerEvent, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	return events[date], nil
}

// EventsForMonth filters the global map down to one month's dates.
func (s *Service) EventsForMonth(ctx context.Context, month calendar.MonthRef) (map[string][]models.PlannerEvent, error) {
	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	prefix := month.DateKey(1)[:8] // "2026-01-"
	out := make(map[string][]models.PlannerEvent)
	for date, list := range events {
		if strings.HasPrefix(date, prefix) {
			out[date] = list
		}
	}
	return out, nil
}

// AddEvent appends an event to its day, preserving insertion order.
func (s *Service) AddEvent(ctx context.Context, date, title, timeOfDay, color string) (models.PlannerEvent, error) {
	if err := validateDate(date); err != nil {
		return models.PlannerEvent{}, err
	}
	if strings.TrimSpace(title) == "" {
		return models.PlannerEvent{}, ErrTitleRequired
	}
	if timeOfDay == "" {
		timeOfDay = DefaultEventTime
	}
	if color == "" {
		color = defaultEventColor
	}

	events, err := s.loadEvents(ctx)
	if err != nil {
		return models.PlannerEvent{}, err
	}

	event := models.PlannerEvent{
		ID:    uuid.NewString(),
		Date:  date,
		Title: title,
		Time:  timeOfDay,
		Color: color,
	}
	events[date] = append(events[date], event)

	if err := s.saveEvents(ctx, events); err != nil {
		return models.PlannerEvent{}, err
	}
	return event, nil
}

// UpdateEvent edits an event's title, time and color in place. The date is
// part of the map key and stays fixed, which keeps the invariant that
// events[date] only holds events whose own date matches.
func (s *Service) UpdateEvent(ctx context.Context, id, title, timeOfDay, color string) (models.PlannerEvent, error) {
	events, err := s.loadEvents(ctx)
	if err != nil {
		return models.PlannerEvent{}, err
	}

	for date, list := range events {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if title != "" {
				list[i].Title = title
			}
			if timeOfDay != "" {
				list[i].Time = timeOfDay
			}
			if color != "" {
				list[i].Color = color
			}
			events[date] = list
			if err := s.saveEvents(ctx, events); err != nil {
				return models.PlannerEvent{}, err
			}
			return list[i], nil
		}
	}
	return models.PlannerEvent{}, ErrEventNotFound
}

// DeleteEvent removes an event wherever it lives. Days left without events
// drop out of the map entirely.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	events, err := s.loadEvents(ctx)
	if err != nil {
		return err
	}

	for date, list := range events {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(events, date)
			} else {
				events[date] = list
			}
			return s.saveEvents(ctx, events)
		}
	}
	return ErrEventNotFound
}

// Tasks returns the full to-do list, newest first.
func (s *Service) Tasks(ctx context.Context) ([]models.ToDoItem, error) {
	return s.loadTasks(ctx)
}

// AddTask prepends a task dated today.
func (s *Service) AddTask(ctx context.Context, text string) (models.ToDoItem, error) {
	if strings.TrimSpace(text) == "" {
		return models.ToDoItem{}, ErrTextRequired
	}

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return models.ToDoItem{}, err
	}

	task := models.ToDoItem{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		Date:      s.now().Format("2006-01-02"),
	}
	tasks = append([]models.ToDoItem{task}, tasks...)

	if err := s.saveTasks(ctx, tasks); err != nil {
		return models.ToDoItem{}, err
	}
	return task, nil
}

// ToggleTask flips a task's completed flag. Toggling twice restores the
// original state.
func (s *Service) ToggleTask(ctx context.Context, id string) (models.ToDoItem, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return models.ToDoItem{}, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			if err := s.saveTasks(ctx, tasks); err != nil {
				return models.ToDoItem{}, err
			}
			return tasks[i], nil
		}
	}
	return models.ToDoItem{}, ErrTaskNotFound
}

// DeleteTask removes a task. Removing the last one persists the empty list.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return s.saveTasks(ctx, tasks)
		}
	}
	return ErrTaskNotFound
}

// TaskCounts reports (done, total), for the overview.
func (s *Service) TaskCounts(ctx context.Context) (int, int, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return 0, 0, err
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(tasks), nil
}

func (s *Service) loadEvents(ctx context.Context) (map[string][]models.PlannerEvent, error) {
	events := make(map[string][]models.PlannerEvent)
	if _, err := s.records.Load(ctx, store.KeyPlannerEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Service) saveEvents(ctx context.Context, events map[string][]models.PlannerEvent) error {
	return s.records.Save(ctx, store.KeyPlannerEvents, events)
}

func (s *Service) loadTasks(ctx context.Context) ([]models.ToDoItem, error) {
	var tasks []models.ToDoItem
	if _, err := s.records.Load(ctx, store.KeyPlannerTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Service) saveTasks(ctx context.Context, tasks []models.ToDoItem) error {
	if tasks == nil {
		tasks = []models.ToDoItem{}
	}
	return s.records.Save(ctx, store.KeyPlannerTasks, tasks)
}
