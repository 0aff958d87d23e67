package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptRepository owns attempts and their responses.
type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// ActiveKey is the value of test_attempts.active_key while an attempt is in progress.
func ActiveKey(testID, studentID string) string {
	return testID + ":" + studentID
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*model.TestAttempt, error) {
	var a model.TestAttempt
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// FindActive returns the in-progress attempt for (test, student) or util.ErrNotFound.
func (r *AttemptRepository) FindActive(ctx context.Context, testID, studentID string) (*model.TestAttempt, error) {
	var a model.TestAttempt
	err := r.DB.WithContext(ctx).
		Where("active_key = ?", ActiveKey(testID, studentID)).
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ListByTestAndStudent returns the visible attempts, newest first.
func (r *AttemptRepository) ListByTestAndStudent(ctx context.Context, testID, studentID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.DB.WithContext(ctx).
		Where("test_id = ? AND student_id = ?", testID, studentID).
		Order("attempt_number desc").
		Find(&attempts).Error
	return attempts, err
}

// NextAttemptNumber counts soft-deleted attempts too, so numbers are never reused.
func (r *AttemptRepository) NextAttemptNumber(ctx context.Context, testID, studentID string) (int, error) {
	var last int
	err := r.DB.WithContext(ctx).Unscoped().
		Model(&model.TestAttempt{}).
		Where("test_id = ? AND student_id = ?", testID, studentID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// Create inserts a new in-progress attempt. A concurrent create for the same
// (test, student) fails with gorm.ErrDuplicatedKey.
func (r *AttemptRepository) Create(ctx context.Context, a *model.TestAttempt) error {
	key := ActiveKey(a.TestID, a.StudentID)
	a.Status = model.AttemptInProgress
	a.ActiveKey = &key
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AttemptRepository) ListResponses(ctx context.Context, attemptID string) ([]model.TestResponse, error) {
	return listResponses(r.DB.WithContext(ctx), attemptID)
}

func listResponses(db *gorm.DB, attemptID string) ([]model.TestResponse, error) {
	var rs []model.TestResponse
	err := db.Where("attempt_id = ?", attemptID).Order("question_order asc").Find(&rs).Error
	return rs, err
}

// lockInProgress re-reads the attempt under a row lock and checks that it still
// belongs to studentID and is in progress.
func lockInProgress(tx *gorm.DB, attemptID, studentID string, notOpen error) (*model.TestAttempt, error) {
	var a model.TestAttempt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, "id = ?", attemptID).Error
	if err != nil {
		return nil, notFound(err)
	}
	if a.StudentID != studentID {
		return nil, util.ErrNotFound
	}
	if a.Status != model.AttemptInProgress {
		return nil, notOpen
	}
	return &a, nil
}

// SaveResponse upserts the response keyed by (attempt, mcq) while the attempt is
// locked, so it cannot land after a submit. A nil answer removes the row: a
// question without a response is the only skipped state.
func (r *AttemptRepository) SaveResponse(ctx context.Context, studentID string, resp *model.TestResponse) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockInProgress(tx, resp.AttemptID, studentID, util.ErrInvalidOrCompletedAttempt); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return util.ErrInvalidOrCompletedAttempt
			}
			return err
		}

		if resp.SelectedAnswer == nil {
			return tx.Unscoped().
				Where("attempt_id = ? AND mcq_id = ?", resp.AttemptID, resp.MCQID).
				Delete(&model.TestResponse{}).Error
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}, {Name: "mcq_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"question_order",
				"selected_answer",
				"time_spent_seconds",
				"answered_at",
				"updated_at",
			}),
		}).Create(resp).Error
	})
}

// Grading is what a submit writes back: one entry per stored response plus the
// attempt aggregates.
type Grading struct {
	Responses        map[string]ResponseGrade // keyed by mcq id
	TotalScore       float64
	TotalCorrect     int
	TotalIncorrect   int
	TotalSkipped     int
	PercentageScore  float64
	IsPassed         bool
	TimeSpentSeconds int
	SubmittedAt      time.Time
}

type ResponseGrade struct {
	IsCorrect    bool
	MarksAwarded float64
}

// GradeFunc computes the grading of a locked, in-progress attempt.
type GradeFunc func(attempt *model.TestAttempt, responses []model.TestResponse) (*Grading, error)

// Submit grades and closes an attempt in one transaction. The final update is
// guarded on status, so a second submit gets util.ErrAlreadySubmitted and leaves
// the first grading untouched.
func (r *AttemptRepository) Submit(ctx context.Context, attemptID, studentID string, grade GradeFunc) (*model.TestAttempt, error) {
	var out model.TestAttempt
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt, err := lockInProgress(tx, attemptID, studentID, util.ErrAlreadySubmitted)
		if err != nil {
			return err
		}

		responses, err := listResponses(tx, attemptID)
		if err != nil {
			return err
		}

		g, err := grade(attempt, responses)
		if err != nil {
			return err
		}

		for _, resp := range responses {
			rg := g.Responses[resp.MCQID]
			err := tx.Model(&model.TestResponse{}).
				Where("id = ?", resp.ID).
				Updates(map[string]interface{}{
					"is_correct":    rg.IsCorrect,
					"marks_awarded": rg.MarksAwarded,
				}).Error
			if err != nil {
				return fmt.Errorf("grade response %s: %w", resp.ID, err)
			}
		}

		res := tx.Model(&model.TestAttempt{}).
			Where("id = ? AND status = ?", attemptID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":             model.AttemptSubmitted,
				"active_key":         nil,
				"submitted_at":       g.SubmittedAt,
				"total_score":        g.TotalScore,
				"total_correct":      g.TotalCorrect,
				"total_incorrect":    g.TotalIncorrect,
				"total_skipped":      g.TotalSkipped,
				"percentage_score":   g.PercentageScore,
				"is_passed":          g.IsPassed,
				"time_spent_seconds": g.TimeSpentSeconds,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadySubmitted
		}

		return tx.First(&out, "id = ?", attemptID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset hides an attempt from the student's history. The attempt number stays
// taken; an in-progress attempt releases its active slot.
func (r *AttemptRepository) Reset(ctx context.Context, attemptID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.TestAttempt{}).
			Where("id = ?", attemptID).
			Update("active_key", nil).Error
		if err != nil {
			return err
		}
		res := tx.Delete(&model.TestAttempt{}, "id = ?", attemptID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFound
		}
		return nil
	})
}
