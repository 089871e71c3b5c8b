// Package levelup owns the per-month fitness and coding trackers. Each month
// stores one aggregate; every mutation loads it, applies the change and
// writes the whole thing back.
package levelup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lifeos/internal/calendar"
	"lifeos/internal/models"
	"lifeos/internal/store"

	"github.com/google/uuid"
)

var (
	ErrUnknownLift     = errors.New("unknown lift")
	ErrUnknownActivity = errors.New("unknown activity kind")
	ErrSkillNotFound   = errors.New("skill not found")
)

const (
	defaultStepsGoal    = 10000
	defaultCaloriesGoal = 800
)

type Service struct {
	records *store.RecordStore
	now     func() time.Time
}

func NewService(records *store.RecordStore) *Service {
	return &Service{records: records, now: time.Now}
}

func defaults() models.LevelUpData {
	return models.LevelUpData{
		Fitness: models.FitnessStats{
			WeightHistory: []models.WeightPoint{},
			Activity: models.ActivityStats{
				StepsGoal:    defaultStepsGoal,
				CaloriesGoal: defaultCaloriesGoal,
			},
		},
		Coding: models.CodingStats{
			Problems: []models.CodingProblem{},
			Skills:   []string{},
		},
	}
}

// Stats returns the month's aggregate, defaults when nothing is stored yet.
// Aggregates saved before the activity block existed are merged with the
// default goals so old payloads keep loading.
func (s *Service) Stats(ctx context.Context, month calendar.MonthRef) (models.LevelUpData, error) {
	data := defaults()
	ok, err := s.records.Load(ctx, store.LevelUpKey(month.Label()), &data)
	if err != nil {
		return models.LevelUpData{}, err
	}
	if ok {
		if data.Fitness.Activity.StepsGoal == 0 {
			data.Fitness.Activity.StepsGoal = defaultStepsGoal
		}
		if data.Fitness.Activity.CaloriesGoal == 0 {
			data.Fitness.Activity.CaloriesGoal = defaultCaloriesGoal
		}
	}
	if data.Fitness.WeightHistory == nil {
		data.Fitness.WeightHistory = []models.WeightPoint{}
	}
	if data.Coding.Problems == nil {
		data.Coding.Problems = []models.CodingProblem{}
	}
	if data.Coding.Skills == nil {
		data.Coding.Skills = []string{}
	}
	return data, nil
}

// LogWeight sets the current weight and appends a history point labeled with
// today's ordinal day.
func (s *Service) LogWeight(ctx context.Context, month calendar.MonthRef, weight float64) (models.LevelUpData, error) {
	if weight <= 0 {
		return models.LevelUpData{}, errors.New("weight must be positive")
	}
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		data.Fitness.Weight = weight
		data.Fitness.WeightHistory = append(data.Fitness.WeightHistory, models.WeightPoint{
			Date:   calendar.Ordinal(s.now().Day()),
			Weight: weight,
		})
		return nil
	})
}

// SetPR records a lift personal record: bench, squat or deadlift.
func (s *Service) SetPR(ctx context.Context, month calendar.MonthRef, lift string, value float64) (models.LevelUpData, error) {
	if value <= 0 {
		return models.LevelUpData{}, errors.New("value must be positive")
	}
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		switch lift {
		case "bench":
			data.Fitness.Bench = value
		case "squat":
			data.Fitness.Squat = value
		case "deadlift":
			data.Fitness.Deadlift = value
		default:
			return fmt.Errorf("%w: %q", ErrUnknownLift, lift)
		}
		return nil
	})
}

// LogActivity increments a daily counter; counters only ever go up within
// a month.
func (s *Service) LogActivity(ctx context.Context, month calendar.MonthRef, kind string, amount int) (models.LevelUpData, error) {
	if amount <= 0 {
		return models.LevelUpData{}, errors.New("amount must be positive")
	}
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		switch kind {
		case "steps":
			data.Fitness.Activity.Steps += amount
		case "calories":
			data.Fitness.Activity.Calories += amount
		default:
			return fmt.Errorf("%w: %q", ErrUnknownActivity, kind)
		}
		return nil
	})
}

// AddProblem prepends a logged practice problem. The title is derived from
// the link's /problems/<slug>/ path segment when present.
func (s *Service) AddProblem(ctx context.Context, month calendar.MonthRef, link, notes string) (models.LevelUpData, error) {
	if strings.TrimSpace(link) == "" {
		return models.LevelUpData{}, errors.New("problem link is required")
	}
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		problem := models.CodingProblem{
			ID:    uuid.NewString(),
			Link:  link,
			Title: ProblemTitle(link),
			Notes: notes,
			Date:  s.now().Format("1/2/2006"),
		}
		data.Coding.Problems = append([]models.CodingProblem{problem}, data.Coding.Problems...)
		return nil
	})
}

// AddSkill appends a skill tag once; duplicates are ignored.
func (s *Service) AddSkill(ctx context.Context, month calendar.MonthRef, skill string) (models.LevelUpData, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return models.LevelUpData{}, errors.New("skill is required")
	}
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		for _, existing := range data.Coding.Skills {
			if existing == skill {
				return nil
			}
		}
		data.Coding.Skills = append(data.Coding.Skills, skill)
		return nil
	})
}

// RemoveSkill drops a skill tag.
func (s *Service) RemoveSkill(ctx context.Context, month calendar.MonthRef, skill string) (models.LevelUpData, error) {
	return s.mutate(ctx, month, func(data *models.LevelUpData) error {
		for i, existing := range data.Coding.Skills {
			if existing == skill {
				data.Coding.Skills = append(data.Coding.Skills[:i], data.Coding.Skills[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrSkillNotFound, skill)
	})
}

// ProblemTitle turns a leetcode-style problem URL into a display title:
// https://leetcode.com/problems/two-sum/ -> "Two Sum". Anything without a
// /problems/<slug>/ path keeps the generic title.
func ProblemTitle(link string) string {
	const fallback = "LeetCode Problem"

	u, err := url.Parse(link)
	if err != nil {
		return fallback
	}
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, seg := range segments {
		if seg != "problems" || i+1 >= len(segments) {
			continue
		}
		words := strings.Split(segments[i+1], "-")
		for j, w := range words {
			if w != "" {
				words[j] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		return strings.Join(words, " ")
	}
	return fallback
}

func (s *Service) mutate(ctx context.Context, month calendar.MonthRef, apply func(*models.LevelUpData) error) (models.LevelUpData, error) {
	data, err := s.Stats(ctx, month)
	if err != nil {
		return models.LevelUpData{}, err
	}
	if err := apply(&data); err != nil {
		return models.LevelUpData{}, err
	}
	if err := s.records.Save(ctx, store.LevelUpKey(month.Label()), data); err != nil {
		return models.LevelUpData{}, err
	}
	return data, nil
}
