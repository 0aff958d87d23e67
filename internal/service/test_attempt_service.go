package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/repository"
	"github.com/Env1sage/LMS-MED-sub001/internal/scoring"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"github.com/Env1sage/LMS-MED-sub001/pkg/monitoring"
	"github.com/Env1sage/LMS-MED-sub001/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestAttemptService runs the attempt lifecycle: eligibility, start/resume,
// answer capture, grading and results.
type TestAttemptService struct {
	Tests    *repository.TestRepository
	Attempts *repository.AttemptRepository
	MCQs     *repository.MCQRepository
	Clock    util.Clock
}

func NewTestAttemptService(tests *repository.TestRepository, attempts *repository.AttemptRepository, mcqs *repository.MCQRepository, clock util.Clock) *TestAttemptService {
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &TestAttemptService{Tests: tests, Attempts: attempts, MCQs: mcqs, Clock: clock}
}

type AttemptSummary struct {
	ID              string              `json:"id"`
	AttemptNumber   int                 `json:"attemptNumber"`
	Status          model.AttemptStatus `json:"status"`
	StartedAt       time.Time           `json:"startedAt"`
	SubmittedAt     *time.Time          `json:"submittedAt,omitempty"`
	TotalScore      float64             `json:"totalScore"`
	PercentageScore float64             `json:"percentageScore"`
	IsPassed        bool                `json:"isPassed"`
}

type TestView struct {
	Test                *model.Test      `json:"test"`
	DueDate             *time.Time       `json:"dueDate,omitempty"`
	Attempts            []AttemptSummary `json:"attempts"`
	InProgressAttemptID string           `json:"inProgressAttemptId,omitempty"`
	CanAttempt          bool             `json:"canAttempt"`
}

// QuestionView is a question as a student sees it during an attempt.
type QuestionView struct {
	MCQID            string         `json:"mcqId"`
	QuestionOrder    int            `json:"questionOrder"`
	Question         string         `json:"question"`
	Options          datatypes.JSON `json:"options"`
	Subject          string         `json:"subject,omitempty"`
	Topic            string         `json:"topic,omitempty"`
	Difficulty       string         `json:"difficulty,omitempty"`
	Marks            float64        `json:"marks"`
	SelectedAnswer   *string        `json:"selectedAnswer"`
	TimeSpentSeconds int            `json:"timeSpentSeconds"`
}

type AttemptView struct {
	AttemptID         string              `json:"attemptId"`
	TestID            string              `json:"testId"`
	Title             string              `json:"title"`
	AttemptNumber     int                 `json:"attemptNumber"`
	Status            model.AttemptStatus `json:"status"`
	StartedAt         time.Time           `json:"startedAt"`
	EndsAt            *time.Time          `json:"endsAt,omitempty"`
	DurationMinutes   int                 `json:"durationMinutes"`
	TotalQuestions    int                 `json:"totalQuestions"`
	TotalMarks        float64             `json:"totalMarks"`
	NegativeMarking   bool                `json:"negativeMarking"`
	NegativeMarkValue float64             `json:"negativeMarkValue"`
	Resumed           bool                `json:"resumed"`
	Questions         []QuestionView      `json:"questions"`
}

type SaveAnswerAck struct {
	AttemptID string `json:"attemptId"`
	MCQID     string `json:"mcqId"`
	Saved     bool   `json:"saved"`
}

type ResultSummary struct {
	AttemptID        string    `json:"attemptId"`
	TotalScore       float64   `json:"totalScore"`
	TotalCorrect     int       `json:"totalCorrect"`
	TotalIncorrect   int       `json:"totalIncorrect"`
	TotalSkipped     int       `json:"totalSkipped"`
	PercentageScore  float64   `json:"percentageScore"`
	IsPassed         bool      `json:"isPassed"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	SubmittedAt      time.Time `json:"submittedAt"`
}

type QuestionResult struct {
	MCQID          string         `json:"mcqId"`
	QuestionOrder  int            `json:"questionOrder"`
	Question       string         `json:"question"`
	Options        datatypes.JSON `json:"options"`
	SelectedAnswer *string        `json:"selectedAnswer"`
	CorrectAnswer  string         `json:"correctAnswer"`
	IsCorrect      bool           `json:"isCorrect"`
	MarksAwarded   float64        `json:"marksAwarded"`
	Explanation    string         `json:"explanation,omitempty"`
}

type ResultView struct {
	ResultSummary
	TestID        string           `json:"testId"`
	Title         string           `json:"title"`
	AttemptNumber int              `json:"attemptNumber"`
	TotalMarks    float64          `json:"totalMarks"`
	PassingMarks  *float64         `json:"passingMarks,omitempty"`
	StartedAt     time.Time        `json:"startedAt"`
	Questions     []QuestionResult `json:"questions,omitempty"`
}

func (s *TestAttemptService) GetTestDetails(ctx context.Context, studentID, testID string) (view *TestView, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestAttemptService.GetTestDetails", attribute.String("test.id", testID))
	defer func() { tracing.End(span, err) }()

	assignment, err := s.assignment(ctx, testID, studentID)
	if err != nil {
		return nil, err
	}
	test, err := s.Tests.FindTestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.Attempts.ListByTestAndStudent(ctx, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	view = &TestView{
		Test:     test,
		DueDate:  assignment.DueDate,
		Attempts: make([]AttemptSummary, 0, len(attempts)),
	}
	for _, a := range attempts {
		view.Attempts = append(view.Attempts, AttemptSummary{
			ID:              a.ID,
			AttemptNumber:   a.AttemptNumber,
			Status:          a.Status,
			StartedAt:       a.StartedAt,
			SubmittedAt:     a.SubmittedAt,
			TotalScore:      a.TotalScore,
			PercentageScore: a.PercentageScore,
			IsPassed:        a.IsPassed,
		})
		if a.Status == model.AttemptInProgress {
			view.InProgressAttemptID = a.ID
		}
	}

	view.CanAttempt = test.Status == model.TestActive &&
		checkWindow(test, s.Clock.Now()) == nil &&
		(view.InProgressAttemptID != "" || checkNewAttempt(test, len(attempts)) == nil)
	return view, nil
}

// StartAttempt returns the student's in-progress attempt for the test, creating
// one when the test allows it.
func (s *TestAttemptService) StartAttempt(ctx context.Context, studentID, testID, ip, userAgent string) (view *AttemptView, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestAttemptService.StartAttempt", attribute.String("test.id", testID))
	defer func() {
		if err != nil {
			monitoring.AttemptsRejected.WithLabelValues(rejectReason(err)).Inc()
		}
		tracing.End(span, err)
	}()

	if _, err := s.assignment(ctx, testID, studentID); err != nil {
		return nil, err
	}
	test, err := s.Tests.FindTestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.Status != model.TestActive {
		return nil, util.ErrTestNotActive
	}
	now := s.Clock.Now()
	if err := checkWindow(test, now); err != nil {
		return nil, err
	}

	active, err := s.Attempts.FindActive(ctx, testID, studentID)
	switch {
	case err == nil:
		return s.resume(ctx, test, active)
	case !errors.Is(err, util.ErrNotFound):
		return nil, fmt.Errorf("find active attempt: %w", err)
	}

	attempts, err := s.Attempts.ListByTestAndStudent(ctx, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	if err := checkNewAttempt(test, len(attempts)); err != nil {
		return nil, err
	}

	number, err := s.Attempts.NextAttemptNumber(ctx, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("next attempt number: %w", err)
	}
	attempt := &model.TestAttempt{
		TestID:        testID,
		StudentID:     studentID,
		AttemptNumber: number,
		StartedAt:     now,
		IPAddress:     ip,
		UserAgent:     userAgent,
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create attempt: %w", err)
		}
		// Lost the race to a concurrent start; hand back the winner.
		winner, ferr := s.Attempts.FindActive(ctx, testID, studentID)
		if ferr != nil {
			return nil, fmt.Errorf("create attempt: %w", err)
		}
		return s.resume(ctx, test, winner)
	}

	monitoring.AttemptsStarted.WithLabelValues("created").Inc()
	logger.Log.Info("test attempt started",
		zap.String("attemptId", attempt.ID),
		zap.String("testId", testID),
		zap.String("studentId", studentID),
		zap.Int("attemptNumber", number),
	)
	return s.attemptView(ctx, test, attempt, nil, false)
}

func (s *TestAttemptService) resume(ctx context.Context, test *model.Test, attempt *model.TestAttempt) (*AttemptView, error) {
	responses, err := s.Attempts.ListResponses(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	monitoring.AttemptsStarted.WithLabelValues("resumed").Inc()
	logger.Log.Debug("test attempt resumed",
		zap.String("attemptId", attempt.ID),
		zap.Int("answered", len(responses)),
	)
	return s.attemptView(ctx, test, attempt, responses, true)
}

func (s *TestAttemptService) attemptView(ctx context.Context, test *model.Test, attempt *model.TestAttempt, responses []model.TestResponse, resumed bool) (*AttemptView, error) {
	questions, err := s.Tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	ordered := orderQuestions(test, attempt.ID, questions, responses)

	mcqs, err := s.MCQs.FindByIDs(ctx, questionIDs(questions))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	saved := make(map[string]model.TestResponse, len(responses))
	for _, r := range responses {
		saved[r.MCQID] = r
	}

	view := &AttemptView{
		AttemptID:         attempt.ID,
		TestID:            test.ID,
		Title:             test.Title,
		AttemptNumber:     attempt.AttemptNumber,
		Status:            attempt.Status,
		StartedAt:         attempt.StartedAt,
		DurationMinutes:   test.DurationMinutes,
		TotalQuestions:    len(ordered),
		TotalMarks:        test.TotalMarks,
		NegativeMarking:   test.NegativeMarking,
		NegativeMarkValue: test.NegativeMarkValue,
		Resumed:           resumed,
		Questions:         make([]QuestionView, 0, len(ordered)),
	}
	if test.DurationMinutes > 0 {
		ends := attempt.StartedAt.Add(time.Duration(test.DurationMinutes) * time.Minute)
		view.EndsAt = &ends
	}

	for _, oq := range ordered {
		qv := QuestionView{
			MCQID:         oq.MCQID,
			QuestionOrder: oq.Position,
			Marks:         oq.Marks,
		}
		if m, ok := mcqs[oq.MCQID]; ok {
			qv.Question = m.Question
			qv.Options = m.Options
			qv.Subject = m.Subject
			qv.Topic = m.Topic
			qv.Difficulty = m.Difficulty
		}
		if r, ok := saved[oq.MCQID]; ok {
			qv.SelectedAnswer = r.SelectedAnswer
			qv.TimeSpentSeconds = r.TimeSpentSeconds
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// SaveAnswer records or overwrites the student's answer to one question. A nil
// or blank answer clears it.
func (s *TestAttemptService) SaveAnswer(ctx context.Context, studentID, attemptID, mcqID string, answer *string, timeSpent int) (ack *SaveAnswerAck, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestAttemptService.SaveAnswer",
		attribute.String("attempt.id", attemptID),
		attribute.String("mcq.id", mcqID),
	)
	defer func() { tracing.End(span, err) }()

	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidOrCompletedAttempt
		}
		return nil, err
	}
	if attempt.StudentID != studentID || attempt.Status != model.AttemptInProgress {
		return nil, util.ErrInvalidOrCompletedAttempt
	}

	test, err := s.Tests.FindTestByID(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	// Saved responses keep the slot the question was shown in.
	var position int
	for _, oq := range orderQuestions(test, attempt.ID, questions, nil) {
		if oq.MCQID == mcqID {
			position = oq.Position
			break
		}
	}
	if position == 0 {
		return nil, util.ErrNotFound
	}

	if answer != nil && strings.TrimSpace(*answer) == "" {
		answer = nil
	}
	if timeSpent < 0 {
		timeSpent = 0
	}
	resp := &model.TestResponse{
		AttemptID:        attemptID,
		MCQID:            mcqID,
		QuestionOrder:    position,
		SelectedAnswer:   answer,
		TimeSpentSeconds: timeSpent,
	}
	if answer != nil {
		now := s.Clock.Now()
		resp.AnsweredAt = &now
	}

	if err := s.Attempts.SaveResponse(ctx, studentID, resp); err != nil {
		return nil, err
	}
	return &SaveAnswerAck{AttemptID: attemptID, MCQID: mcqID, Saved: true}, nil
}

// SubmitAttempt grades the attempt and closes it. It succeeds at most once per
// attempt.
func (s *TestAttemptService) SubmitAttempt(ctx context.Context, studentID, attemptID string) (summary *ResultSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestAttemptService.SubmitAttempt", attribute.String("attempt.id", attemptID))
	defer func() {
		if err != nil {
			monitoring.AttemptsRejected.WithLabelValues(rejectReason(err)).Inc()
		}
		tracing.End(span, err)
	}()

	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrNotFound
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAlreadySubmitted
	}

	test, err := s.Tests.FindTestByID(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	mcqs, err := s.MCQs.FindByIDs(ctx, questionIDs(questions))
	if err != nil {
		return nil, fmt.Errorf("load answer key: %w", err)
	}

	key := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		sq := scoring.Question{MCQID: q.MCQID, Marks: q.Marks}
		if m, ok := mcqs[q.MCQID]; ok {
			sq.CorrectAnswer = m.CorrectAnswer
		}
		key = append(key, sq)
	}
	policy := scoring.Policy{
		NegativeMarking:   test.NegativeMarking,
		NegativeMarkValue: test.NegativeMarkValue,
		TotalMarks:        test.TotalMarks,
		PassingMarks:      test.PassingMarks,
	}

	now := s.Clock.Now()
	done, err := s.Attempts.Submit(ctx, attemptID, studentID, func(a *model.TestAttempt, responses []model.TestResponse) (*repository.Grading, error) {
		answers := make(map[string]*string, len(responses))
		for _, r := range responses {
			answers[r.MCQID] = r.SelectedAnswer
		}
		res := scoring.Score(key, answers, policy)

		g := &repository.Grading{
			Responses:        make(map[string]repository.ResponseGrade, len(res.Grades)),
			TotalScore:       res.TotalScore,
			TotalCorrect:     res.Correct,
			TotalIncorrect:   res.Incorrect,
			TotalSkipped:     res.Skipped,
			PercentageScore:  res.PercentageScore,
			IsPassed:         res.IsPassed,
			TimeSpentSeconds: elapsedSeconds(a.StartedAt, now),
			SubmittedAt:      now,
		}
		for _, gr := range res.Grades {
			g.Responses[gr.MCQID] = repository.ResponseGrade{IsCorrect: gr.IsCorrect, MarksAwarded: gr.MarksAwarded}
		}
		return g, nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AttemptsSubmitted.WithLabelValues(fmt.Sprint(done.IsPassed)).Inc()
	monitoring.AttemptPercentage.Observe(done.PercentageScore)
	logger.Log.Info("test attempt submitted",
		zap.String("attemptId", done.ID),
		zap.String("testId", done.TestID),
		zap.Float64("totalScore", done.TotalScore),
		zap.Bool("passed", done.IsPassed),
	)
	return resultSummary(done), nil
}

// GetAttemptResults returns a submitted attempt's result. The per-question
// breakdown is included only when the test shows answers after submission.
func (s *TestAttemptService) GetAttemptResults(ctx context.Context, studentID, attemptID string) (view *ResultView, err error) {
	ctx, span := tracing.StartSpan(ctx, "TestAttemptService.GetAttemptResults", attribute.String("attempt.id", attemptID))
	defer func() { tracing.End(span, err) }()

	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrNotFound
	}
	if attempt.Status != model.AttemptSubmitted {
		return nil, util.ErrNotYetSubmitted
	}
	test, err := s.Tests.FindTestByID(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}

	view = &ResultView{
		ResultSummary: *resultSummary(attempt),
		TestID:        test.ID,
		Title:         test.Title,
		AttemptNumber: attempt.AttemptNumber,
		TotalMarks:    test.TotalMarks,
		PassingMarks:  test.PassingMarks,
		StartedAt:     attempt.StartedAt,
	}
	if !test.ShowAnswersAfter {
		return view, nil
	}

	questions, err := s.Tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	responses, err := s.Attempts.ListResponses(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	mcqs, err := s.MCQs.FindByIDs(ctx, questionIDs(questions))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	saved := make(map[string]model.TestResponse, len(responses))
	for _, r := range responses {
		saved[r.MCQID] = r
	}

	for _, oq := range orderQuestions(test, attempt.ID, questions, responses) {
		qr := QuestionResult{MCQID: oq.MCQID, QuestionOrder: oq.Position}
		if m, ok := mcqs[oq.MCQID]; ok {
			qr.Question = m.Question
			qr.Options = m.Options
			qr.CorrectAnswer = m.CorrectAnswer
			if test.ShowExplanations {
				qr.Explanation = m.Explanation
			}
		}
		if r, ok := saved[oq.MCQID]; ok {
			qr.SelectedAnswer = r.SelectedAnswer
			if r.IsCorrect != nil {
				qr.IsCorrect = *r.IsCorrect
			}
			if r.MarksAwarded != nil {
				qr.MarksAwarded = *r.MarksAwarded
			}
		}
		view.Questions = append(view.Questions, qr)
	}
	return view, nil
}

// ListAttempts is the student's visible attempt history on one test.
func (s *TestAttemptService) ListAttempts(ctx context.Context, studentID, testID string) ([]model.TestAttempt, error) {
	if _, err := s.assignment(ctx, testID, studentID); err != nil {
		return nil, err
	}
	return s.Attempts.ListByTestAndStudent(ctx, testID, studentID)
}

// ResetAttempt hides an attempt from history and frees its eligibility slot.
// Its attempt number is never handed out again.
func (s *TestAttemptService) ResetAttempt(ctx context.Context, attemptID string) error {
	if err := s.Attempts.Reset(ctx, attemptID); err != nil {
		return err
	}
	logger.Log.Info("test attempt reset", zap.String("attemptId", attemptID))
	return nil
}

func (s *TestAttemptService) assignment(ctx context.Context, testID, studentID string) (*model.TestAssignment, error) {
	a, err := s.Tests.FindAssignment(ctx, testID, studentID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrNotAssigned
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return a, nil
}

// checkWindow tests now against the optional schedule bounds, both inclusive.
func checkWindow(test *model.Test, now time.Time) error {
	if test.ScheduledStart != nil && now.Before(*test.ScheduledStart) {
		return util.ErrTestNotStarted
	}
	if test.ScheduledEnd != nil && now.After(*test.ScheduledEnd) {
		return util.ErrTestEnded
	}
	return nil
}

// checkNewAttempt decides whether another attempt may be created given the
// number of visible ones.
func checkNewAttempt(test *model.Test, existing int) error {
	if !test.AllowMultipleAttempts && existing > 0 {
		return util.ErrAlreadyAttempted
	}
	if existing >= test.MaxAttempts {
		return util.ErrMaxAttemptsReached
	}
	return nil
}

type orderedQuestion struct {
	model.TestQuestion
	Position int
}

// orderQuestions lays out the questions of one attempt. The base order is the
// definition order, permuted by a seed derived from the attempt id when the test
// shuffles. Responses already saved pin their question to the stored slot and
// the remaining questions fill the free slots in base order.
func orderQuestions(test *model.Test, attemptID string, questions []model.TestQuestion, responses []model.TestResponse) []orderedQuestion {
	base := questions
	if test.ShuffleQuestions {
		base = util.Shuffle(questions, util.SeedFromKey(attemptID))
	}

	n := len(base)
	slots := make([]*model.TestQuestion, n)
	placed := make(map[string]bool, len(responses))
	inTest := make(map[string]int, n)
	for i := range base {
		inTest[base[i].MCQID] = i
	}
	for _, r := range responses {
		i, ok := inTest[r.MCQID]
		if !ok || r.QuestionOrder < 1 || r.QuestionOrder > n || slots[r.QuestionOrder-1] != nil {
			continue
		}
		slots[r.QuestionOrder-1] = &base[i]
		placed[r.MCQID] = true
	}

	next := 0
	for i := range base {
		if placed[base[i].MCQID] {
			continue
		}
		for slots[next] != nil {
			next++
		}
		slots[next] = &base[i]
	}

	out := make([]orderedQuestion, n)
	for i, q := range slots {
		out[i] = orderedQuestion{TestQuestion: *q, Position: i + 1}
	}
	return out
}

func questionIDs(questions []model.TestQuestion) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.MCQID
	}
	return ids
}

func elapsedSeconds(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func resultSummary(a *model.TestAttempt) *ResultSummary {
	out := &ResultSummary{
		AttemptID:        a.ID,
		TotalScore:       a.TotalScore,
		TotalCorrect:     a.TotalCorrect,
		TotalIncorrect:   a.TotalIncorrect,
		TotalSkipped:     a.TotalSkipped,
		PercentageScore:  a.PercentageScore,
		IsPassed:         a.IsPassed,
		TimeSpentSeconds: a.TimeSpentSeconds,
	}
	if a.SubmittedAt != nil {
		out.SubmittedAt = *a.SubmittedAt
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, util.ErrNotAssigned):
		return "not_assigned"
	case errors.Is(err, util.ErrTestNotActive):
		return "not_active"
	case errors.Is(err, util.ErrTestNotStarted):
		return "not_started"
	case errors.Is(err, util.ErrTestEnded):
		return "ended"
	case errors.Is(err, util.ErrAlreadyAttempted):
		return "already_attempted"
	case errors.Is(err, util.ErrMaxAttemptsReached):
		return "max_attempts"
	case errors.Is(err, util.ErrAlreadySubmitted):
		return "already_submitted"
	case errors.Is(err, util.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
