package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/repository"
	"github.com/Env1sage/LMS-MED-sub001/internal/testutil"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	clock   *util.FixedClock
	svc     *TestAttemptService
	tests   *repository.TestRepository
	mcqs    *repository.MCQRepository
	keys    []string // correct answer per question, in definition order
	mcqIDs  []string
	testID  string
	student string
}

func strPtr(s string) *string { return &s }

func float64Ptr(v float64) *float64 { return &v }

// newFixture creates an active test of n one-mark questions assigned to one
// student. mutate adjusts the test before it is stored.
func newFixture(t *testing.T, n int, mutate func(*model.Test)) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)

	f := &fixture{
		db:      db,
		clock:   &util.FixedClock{T: t0},
		tests:   repository.NewTestRepository(db),
		mcqs:    repository.NewMCQRepository(db, nil, 0),
		student: "student-1",
	}
	f.svc = NewTestAttemptService(f.tests, repository.NewAttemptRepository(db), f.mcqs, f.clock)

	letters := []string{"A", "B", "C", "D"}
	questions := make([]model.TestQuestion, 0, n)
	for i := 0; i < n; i++ {
		key := letters[i%len(letters)]
		m := &model.MCQ{
			Subject:       "anatomy",
			Topic:         "bones",
			Question:      fmt.Sprintf("question %d", i+1),
			Options:       datatypes.JSON(`{"A":"a","B":"b","C":"c","D":"d"}`),
			CorrectAnswer: key,
			Explanation:   fmt.Sprintf("because %d", i+1),
			Status:        model.MCQApproved,
		}
		require.NoError(t, f.mcqs.Create(ctx, m))
		f.mcqIDs = append(f.mcqIDs, m.ID)
		f.keys = append(f.keys, key)
		questions = append(questions, model.TestQuestion{MCQID: m.ID, QuestionOrder: i + 1, Marks: 1})
	}

	test := &model.Test{
		Title:          "Weekly quiz",
		Subject:        "anatomy",
		Status:         model.TestActive,
		TotalQuestions: n,
		TotalMarks:     float64(n),
		MaxAttempts:    1,
	}
	if mutate != nil {
		mutate(test)
	}
	require.NoError(t, f.tests.CreateTest(ctx, test, questions))
	require.NoError(t, f.tests.CreateAssignment(ctx, &model.TestAssignment{TestID: test.ID, StudentID: f.student}))
	f.testID = test.ID
	return f
}

func wrong(key string) string {
	if key == "A" {
		return "B"
	}
	return "A"
}

func (f *fixture) start(t *testing.T) *AttemptView {
	t.Helper()
	view, err := f.svc.StartAttempt(context.Background(), f.student, f.testID, "127.0.0.1", "test")
	require.NoError(t, err)
	return view
}

func (f *fixture) save(t *testing.T, attemptID string, i int, answer *string) {
	t.Helper()
	_, err := f.svc.SaveAnswer(context.Background(), f.student, attemptID, f.mcqIDs[i], answer, 10)
	require.NoError(t, err)
}

func TestStartAttemptIsIdempotent(t *testing.T) {
	f := newFixture(t, 3, func(tt *model.Test) { tt.DurationMinutes = 30 })

	first := f.start(t)
	assert.Equal(t, 1, first.AttemptNumber)
	assert.False(t, first.Resumed)
	require.NotNil(t, first.EndsAt)
	assert.True(t, t0.Add(30*time.Minute).Equal(*first.EndsAt))
	assert.Len(t, first.Questions, 3)

	f.clock.Advance(5 * time.Minute)
	second := f.start(t)
	assert.Equal(t, first.AttemptID, second.AttemptID)
	assert.True(t, second.Resumed)
	require.NotNil(t, second.EndsAt)
	assert.True(t, first.EndsAt.Equal(*second.EndsAt))

	var count int64
	require.NoError(t, f.db.Model(&model.TestAttempt{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStartAttemptEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("not assigned", func(t *testing.T) {
		f := newFixture(t, 1, nil)
		_, err := f.svc.StartAttempt(ctx, "stranger", f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrNotAssigned)
	})

	t.Run("not active", func(t *testing.T) {
		f := newFixture(t, 1, func(tt *model.Test) { tt.Status = model.TestScheduled })
		_, err := f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrTestNotActive)
	})

	t.Run("window", func(t *testing.T) {
		start, end := t0.Add(time.Hour), t0.Add(2*time.Hour)
		f := newFixture(t, 1, func(tt *model.Test) {
			tt.ScheduledStart = &start
			tt.ScheduledEnd = &end
		})

		_, err := f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrTestNotStarted)

		f.clock.T = start
		_, err = f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.NoError(t, err, "start bound is inclusive")

		f.clock.T = end.Add(time.Second)
		_, err = f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrTestEnded)
	})

	t.Run("already attempted", func(t *testing.T) {
		f := newFixture(t, 1, func(tt *model.Test) { tt.MaxAttempts = 3 })
		v := f.start(t)
		_, err := f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
		require.NoError(t, err)

		_, err = f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrAlreadyAttempted)
	})

	t.Run("max attempts", func(t *testing.T) {
		f := newFixture(t, 1, func(tt *model.Test) {
			tt.AllowMultipleAttempts = true
			tt.MaxAttempts = 1
		})
		v := f.start(t)
		_, err := f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
		require.NoError(t, err)

		_, err = f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
		assert.ErrorIs(t, err, util.ErrMaxAttemptsReached)
	})
}

func TestAttemptNumbersAreNeverReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, func(tt *model.Test) {
		tt.AllowMultipleAttempts = true
		tt.MaxAttempts = 3
	})

	var ids []string
	for want := 1; want <= 3; want++ {
		v := f.start(t)
		assert.Equal(t, want, v.AttemptNumber)
		_, err := f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
		require.NoError(t, err)
		ids = append(ids, v.AttemptID)
	}

	_, err := f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
	require.ErrorIs(t, err, util.ErrMaxAttemptsReached)

	// Hiding attempt 2 frees a slot but not its number.
	require.NoError(t, f.svc.ResetAttempt(ctx, ids[1]))
	v := f.start(t)
	assert.Equal(t, 4, v.AttemptNumber)

	history, err := f.svc.ListAttempts(ctx, f.student, f.testID)
	require.NoError(t, err)
	var numbers []int
	for _, a := range history {
		numbers = append(numbers, a.AttemptNumber)
	}
	assert.Equal(t, []int{4, 3, 1}, numbers)
}

func TestSubmitExampleScore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5, func(tt *model.Test) {
		tt.NegativeMarking = true
		tt.NegativeMarkValue = 0.25
		tt.PassingMarks = float64Ptr(3)
		tt.ShowAnswersAfter = true
	})

	v := f.start(t)
	for i := 0; i < 3; i++ {
		f.save(t, v.AttemptID, i, strPtr(f.keys[i]))
	}
	f.save(t, v.AttemptID, 3, strPtr(wrong(f.keys[3])))
	// Question 5 is never touched.

	f.clock.Advance(90 * time.Second)
	res, err := f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	assert.InDelta(t, 2.75, res.TotalScore, 1e-9)
	assert.Equal(t, 55.0, res.PercentageScore)
	assert.False(t, res.IsPassed)
	assert.Equal(t, 3, res.TotalCorrect)
	assert.Equal(t, 1, res.TotalIncorrect)
	assert.Equal(t, 1, res.TotalSkipped)
	assert.Equal(t, 90, res.TimeSpentSeconds)
	assert.True(t, t0.Add(90*time.Second).Equal(res.SubmittedAt))

	_, err = f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	view, err := f.svc.GetAttemptResults(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	assert.InDelta(t, 2.75, view.TotalScore, 1e-9)
	assert.False(t, view.IsPassed)
	require.Len(t, view.Questions, 5)
	for _, q := range view.Questions {
		assert.NotEmpty(t, q.CorrectAnswer)
		assert.Empty(t, q.Explanation, "explanations need showExplanations")
	}
	assert.InDelta(t, -0.25, view.Questions[3].MarksAwarded, 1e-9)
	assert.Nil(t, view.Questions[4].SelectedAnswer)
}

func TestSubmitRejectsOtherStudents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, nil)
	v := f.start(t)

	_, err := f.svc.SubmitAttempt(ctx, "intruder", v.AttemptID)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.svc.SubmitAttempt(ctx, f.student, "missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestConcurrentSubmitGradesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, nil)
	v := f.start(t)
	f.save(t, v.AttemptID, 0, strPtr(f.keys[0]))

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	}
	assert.Equal(t, 1, ok)
}

func TestConcurrentStartCreatesOneAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, nil)

	const n = 5
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.svc.StartAttempt(ctx, f.student, f.testID, "", "")
			errs[i] = err
			if err == nil {
				ids[i] = v.AttemptID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	var count int64
	require.NoError(t, f.db.Model(&model.TestAttempt{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveAnswer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, nil)
	v := f.start(t)

	f.save(t, v.AttemptID, 0, strPtr("C"))
	f.save(t, v.AttemptID, 0, strPtr(f.keys[0]))
	f.save(t, v.AttemptID, 1, strPtr("  "))

	resumed := f.start(t)
	require.Len(t, resumed.Questions, 3)
	require.NotNil(t, resumed.Questions[0].SelectedAnswer)
	assert.Equal(t, f.keys[0], *resumed.Questions[0].SelectedAnswer)
	assert.Nil(t, resumed.Questions[1].SelectedAnswer, "blank answers clear the question")

	_, err := f.svc.SaveAnswer(ctx, f.student, v.AttemptID, "not-in-test", strPtr("A"), 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.svc.SaveAnswer(ctx, "intruder", v.AttemptID, f.mcqIDs[0], strPtr("A"), 0)
	assert.ErrorIs(t, err, util.ErrInvalidOrCompletedAttempt)

	_, err = f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	_, err = f.svc.SaveAnswer(ctx, f.student, v.AttemptID, f.mcqIDs[2], strPtr("A"), 0)
	assert.ErrorIs(t, err, util.ErrInvalidOrCompletedAttempt)
}

func TestShuffledOrderIsStableAcrossResume(t *testing.T) {
	f := newFixture(t, 12, func(tt *model.Test) { tt.ShuffleQuestions = true })

	first := f.start(t)
	order := func(v *AttemptView) []string {
		ids := make([]string, len(v.Questions))
		for i, q := range v.Questions {
			ids[i] = q.MCQID
			assert.Equal(t, i+1, q.QuestionOrder)
		}
		return ids
	}
	before := order(first)
	assert.ElementsMatch(t, f.mcqIDs, before)

	// Answer a few questions out of order, then resume.
	for _, pos := range []int{7, 2, 10} {
		_, err := f.svc.SaveAnswer(context.Background(), f.student, first.AttemptID, before[pos], strPtr("A"), 3)
		require.NoError(t, err)
	}
	after := order(f.start(t))
	assert.Equal(t, before, after)
}

func TestResultsHiddenUntilSubmitted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, func(tt *model.Test) {
		tt.ShowAnswersAfter = true
		tt.ShowExplanations = true
	})
	v := f.start(t)

	_, err := f.svc.GetAttemptResults(ctx, f.student, v.AttemptID)
	assert.ErrorIs(t, err, util.ErrNotYetSubmitted)

	f.save(t, v.AttemptID, 0, strPtr(f.keys[0]))
	_, err = f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	require.NoError(t, err)

	view, err := f.svc.GetAttemptResults(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	assert.True(t, view.Questions[0].IsCorrect)
	assert.Equal(t, "because 1", view.Questions[0].Explanation)

	_, err = f.svc.GetAttemptResults(ctx, "intruder", v.AttemptID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestResultsWithoutAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, nil)
	v := f.start(t)
	_, err := f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	require.NoError(t, err)

	view, err := f.svc.GetAttemptResults(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	assert.Empty(t, view.Questions)
	assert.Equal(t, 2, view.TotalSkipped)
	assert.False(t, view.IsPassed)
}

func TestGetTestDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, func(tt *model.Test) {
		tt.AllowMultipleAttempts = true
		tt.MaxAttempts = 2
	})

	view, err := f.svc.GetTestDetails(ctx, f.student, f.testID)
	require.NoError(t, err)
	assert.True(t, view.CanAttempt)
	assert.Empty(t, view.Attempts)

	v := f.start(t)
	view, err = f.svc.GetTestDetails(ctx, f.student, f.testID)
	require.NoError(t, err)
	assert.True(t, view.CanAttempt, "an in-progress attempt can be resumed")
	assert.Equal(t, v.AttemptID, view.InProgressAttemptID)

	_, err = f.svc.SubmitAttempt(ctx, f.student, v.AttemptID)
	require.NoError(t, err)
	v2 := f.start(t)
	_, err = f.svc.SubmitAttempt(ctx, f.student, v2.AttemptID)
	require.NoError(t, err)

	view, err = f.svc.GetTestDetails(ctx, f.student, f.testID)
	require.NoError(t, err)
	assert.False(t, view.CanAttempt)
	require.Len(t, view.Attempts, 2)
	assert.Equal(t, 2, view.Attempts[0].AttemptNumber)
	assert.Empty(t, view.InProgressAttemptID)

	_, err = f.svc.GetTestDetails(ctx, "stranger", f.testID)
	assert.ErrorIs(t, err, util.ErrNotAssigned)
}

func TestOrderQuestionsFillsFreeSlots(t *testing.T) {
	test := &model.Test{}
	qs := []model.TestQuestion{{MCQID: "a"}, {MCQID: "b"}, {MCQID: "c"}, {MCQID: "d"}}
	responses := []model.TestResponse{
		{MCQID: "d", QuestionOrder: 1},
		{MCQID: "x", QuestionOrder: 2}, // not in the test
		{MCQID: "b", QuestionOrder: 9}, // out of range
	}

	got := orderQuestions(test, "attempt", qs, responses)
	var ids []string
	for _, q := range got {
		ids = append(ids, q.MCQID)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids)
}
