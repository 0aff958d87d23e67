package repository

import (
	"context"
	"errors"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"gorm.io/gorm"
)

// TestRepository reads test definitions and assignments. Both are owned by the
// course management side; the create methods exist for seeding and tests.
type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) FindTestByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	if err := r.DB.WithContext(ctx).First(&test, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &test, nil
}

// ListQuestions returns the test's questions in definition order.
func (r *TestRepository) ListQuestions(ctx context.Context, testID string) ([]model.TestQuestion, error) {
	var qs []model.TestQuestion
	err := r.DB.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("question_order asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *TestRepository) FindAssignment(ctx context.Context, testID, studentID string) (*model.TestAssignment, error) {
	var a model.TestAssignment
	err := r.DB.WithContext(ctx).
		Where("test_id = ? AND student_id = ?", testID, studentID).
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// CreateTest stores a test with its questions in one transaction.
func (r *TestRepository) CreateTest(ctx context.Context, test *model.Test, questions []model.TestQuestion) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].TestID = test.ID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *TestRepository) CreateAssignment(ctx context.Context, a *model.TestAssignment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

// notFound maps gorm's missing-row error onto the engine's sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}
