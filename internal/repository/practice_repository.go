package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"gorm.io/gorm"
)

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

// CreateSession stores the session together with its questions in order.
func (r *PracticeRepository) CreateSession(ctx context.Context, s *model.PracticeSession, mcqIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if len(mcqIDs) == 0 {
			return nil
		}
		questions := make([]model.PracticeSessionQuestion, len(mcqIDs))
		for i, id := range mcqIDs {
			questions[i] = model.PracticeSessionQuestion{SessionID: s.ID, MCQID: id, QuestionOrder: i + 1}
		}
		return tx.Create(&questions).Error
	})
}

// HasQuestion reports whether mcqID was selected for the session.
func (r *PracticeRepository) HasQuestion(ctx context.Context, sessionID, mcqID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PracticeSessionQuestion{}).
		Where("session_id = ? AND mcq_id = ?", sessionID, mcqID).
		Count(&n).Error
	return n > 0, err
}

func (r *PracticeRepository) FindSession(ctx context.Context, id string) (*model.PracticeSession, error) {
	var s model.PracticeSession
	if err := r.DB.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *PracticeRepository) ListByStudent(ctx context.Context, studentID string, page, limit int) ([]model.PracticeSession, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.PracticeSession{}).
		Where("student_id = ?", studentID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.PracticeSession
	err := q.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

// RecordAnswer stores the response and bumps the session counters together. A
// second answer to the same question fails with util.ErrAlreadyAnswered; a
// completed session with util.ErrSessionCompleted.
func (r *PracticeRepository) RecordAnswer(ctx context.Context, resp *model.PracticeResponse) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := "incorrect_answers"
		if resp.IsCorrect {
			counter = "correct_answers"
		}
		res := tx.Model(&model.PracticeSession{}).
			Where("id = ? AND completed_at IS NULL", resp.SessionID).
			UpdateColumn(counter, gorm.Expr(counter+" + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSessionCompleted
		}

		if err := tx.Create(resp).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyAnswered
			}
			return err
		}
		return nil
	})
}

// Complete stamps completedAt once, deriving skipped and time spent from the
// stored responses.
func (r *PracticeRepository) Complete(ctx context.Context, sessionID string, now time.Time) (*model.PracticeSession, error) {
	var out model.PracticeSession
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.PracticeSession
		if err := tx.First(&s, "id = ?", sessionID).Error; err != nil {
			return notFound(err)
		}

		var agg struct {
			Answered  int
			TimeSpent int
		}
		err := tx.Model(&model.PracticeResponse{}).
			Select("COUNT(*) AS answered, COALESCE(SUM(time_spent_seconds), 0) AS time_spent").
			Where("session_id = ?", sessionID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		skipped := s.TotalQuestions - agg.Answered
		if skipped < 0 {
			skipped = 0
		}

		res := tx.Model(&model.PracticeSession{}).
			Where("id = ? AND completed_at IS NULL", sessionID).
			Updates(map[string]interface{}{
				"skipped_questions":  skipped,
				"time_spent_seconds": agg.TimeSpent,
				"completed_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSessionCompleted
		}

		return tx.First(&out, "id = ?", sessionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
