// Package seed loads a YAML question bank with its tests and assignments into
// the database for local development.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/repository"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Bank struct {
	Questions []Question `yaml:"questions"`
	Tests     []Test     `yaml:"tests"`
}

type Question struct {
	Key         string            `yaml:"key"`
	Subject     string            `yaml:"subject"`
	Topic       string            `yaml:"topic"`
	Question    string            `yaml:"question"`
	Options     map[string]string `yaml:"options"`
	Answer      string            `yaml:"answer"`
	Explanation string            `yaml:"explanation"`
	Difficulty  string            `yaml:"difficulty"`
	Status      model.MCQStatus   `yaml:"status"`
}

type TestQuestion struct {
	Key   string  `yaml:"key"`
	Marks float64 `yaml:"marks"`
}

type Test struct {
	Title                 string           `yaml:"title"`
	Subject               string           `yaml:"subject"`
	Type                  string           `yaml:"type"`
	Status                model.TestStatus `yaml:"status"`
	ScheduledStart        *time.Time       `yaml:"scheduled_start"`
	ScheduledEnd          *time.Time       `yaml:"scheduled_end"`
	DurationMinutes       int              `yaml:"duration_minutes"`
	PassingMarks          *float64         `yaml:"passing_marks"`
	MaxAttempts           int              `yaml:"max_attempts"`
	AllowMultipleAttempts bool             `yaml:"allow_multiple_attempts"`
	ShuffleQuestions      bool             `yaml:"shuffle_questions"`
	NegativeMarking       bool             `yaml:"negative_marking"`
	NegativeMarkValue     float64          `yaml:"negative_mark_value"`
	ShowAnswersAfter      bool             `yaml:"show_answers_after"`
	ShowExplanations      bool             `yaml:"show_explanations"`
	Questions             []TestQuestion   `yaml:"questions"`
	Students              []string         `yaml:"students"`
}

// Result maps bank keys and test titles to the ids they were stored under.
type Result struct {
	MCQIDs  map[string]string
	TestIDs map[string]string
}

func Parse(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Bank) Validate() error {
	var errs []error
	keys := make(map[string]bool, len(b.Questions))
	for i, q := range b.Questions {
		switch {
		case q.Key == "":
			errs = append(errs, fmt.Errorf("question %d: key is required", i))
		case keys[q.Key]:
			errs = append(errs, fmt.Errorf("question %q: duplicate key", q.Key))
		}
		keys[q.Key] = true
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Errorf("question %q: text is required", q.Key))
		}
		if _, ok := q.Options[q.Answer]; !ok {
			errs = append(errs, fmt.Errorf("question %q: answer %q is not an option", q.Key, q.Answer))
		}
	}
	for _, t := range b.Tests {
		if t.Title == "" {
			errs = append(errs, errors.New("test: title is required"))
		}
		for _, tq := range t.Questions {
			if !keys[tq.Key] {
				errs = append(errs, fmt.Errorf("test %q: unknown question %q", t.Title, tq.Key))
			}
		}
	}
	return errors.Join(errs...)
}

// Load stores the bank in one transaction.
func Load(ctx context.Context, db *gorm.DB, b *Bank) (*Result, error) {
	res := &Result{
		MCQIDs:  make(map[string]string, len(b.Questions)),
		TestIDs: make(map[string]string, len(b.Tests)),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mcqs := repository.NewMCQRepository(tx, nil, 0)
		tests := repository.NewTestRepository(tx)

		for _, q := range b.Questions {
			opts, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			status := q.Status
			if status == "" {
				status = model.MCQApproved
			}
			m := &model.MCQ{
				Subject:       q.Subject,
				Topic:         q.Topic,
				Question:      q.Question,
				Options:       datatypes.JSON(opts),
				CorrectAnswer: q.Answer,
				Explanation:   q.Explanation,
				Difficulty:    q.Difficulty,
				Status:        status,
			}
			if err := mcqs.Create(ctx, m); err != nil {
				return fmt.Errorf("question %q: %w", q.Key, err)
			}
			res.MCQIDs[q.Key] = m.ID
		}

		for _, t := range b.Tests {
			test, questions := t.toModel(res.MCQIDs)
			if err := tests.CreateTest(ctx, test, questions); err != nil {
				return fmt.Errorf("test %q: %w", t.Title, err)
			}
			for _, student := range t.Students {
				err := tests.CreateAssignment(ctx, &model.TestAssignment{TestID: test.ID, StudentID: student})
				if err != nil {
					return fmt.Errorf("assign %q to %s: %w", t.Title, student, err)
				}
			}
			res.TestIDs[t.Title] = test.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (t Test) toModel(ids map[string]string) (*model.Test, []model.TestQuestion) {
	status := t.Status
	if status == "" {
		status = model.TestActive
	}
	maxAttempts := t.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	test := &model.Test{
		Title:                 t.Title,
		Subject:               t.Subject,
		Type:                  t.Type,
		Status:                status,
		ScheduledStart:        t.ScheduledStart,
		ScheduledEnd:          t.ScheduledEnd,
		DurationMinutes:       t.DurationMinutes,
		TotalQuestions:        len(t.Questions),
		PassingMarks:          t.PassingMarks,
		MaxAttempts:           maxAttempts,
		AllowMultipleAttempts: t.AllowMultipleAttempts,
		ShuffleQuestions:      t.ShuffleQuestions,
		NegativeMarking:       t.NegativeMarking,
		NegativeMarkValue:     t.NegativeMarkValue,
		ShowAnswersAfter:      t.ShowAnswersAfter,
		ShowExplanations:      t.ShowExplanations,
	}

	questions := make([]model.TestQuestion, 0, len(t.Questions))
	for i, tq := range t.Questions {
		marks := tq.Marks
		if marks <= 0 {
			marks = 1
		}
		test.TotalMarks += marks
		questions = append(questions, model.TestQuestion{
			MCQID:         ids[tq.Key],
			QuestionOrder: i + 1,
			Marks:         marks,
		})
	}
	return test, questions
}
