package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
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
)

const (
	DefaultPracticeCount = 10
	MaxPracticeCount     = 50
)

// PracticeService runs ungraded practice sessions with immediate feedback.
type PracticeService struct {
	Sessions *repository.PracticeRepository
	MCQs     *repository.MCQRepository
	Clock    util.Clock

	mu           sync.RWMutex
	defaultCount int
	maxCount     int
}

func NewPracticeService(sessions *repository.PracticeRepository, mcqs *repository.MCQRepository, clock util.Clock) *PracticeService {
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &PracticeService{
		Sessions:     sessions,
		MCQs:         mcqs,
		Clock:        clock,
		defaultCount: DefaultPracticeCount,
		maxCount:     MaxPracticeCount,
	}
}

// SetLimits changes the question count bounds; the config watcher calls it on reload.
func (s *PracticeService) SetLimits(defaultCount, maxCount int) {
	if maxCount <= 0 {
		maxCount = MaxPracticeCount
	}
	if defaultCount <= 0 || defaultCount > maxCount {
		defaultCount = min(DefaultPracticeCount, maxCount)
	}
	s.mu.Lock()
	s.defaultCount, s.maxCount = defaultCount, maxCount
	s.mu.Unlock()
}

func (s *PracticeService) count(requested int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if requested <= 0 {
		return s.defaultCount
	}
	return min(requested, s.maxCount)
}

type StartPracticeRequest struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Count   int    `json:"count"`
}

type PracticeQuestion struct {
	MCQID      string         `json:"mcqId"`
	Question   string         `json:"question"`
	Options    datatypes.JSON `json:"options"`
	Subject    string         `json:"subject,omitempty"`
	Topic      string         `json:"topic,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
}

type PracticeView struct {
	SessionID      string             `json:"sessionId"`
	Subject        string             `json:"subject,omitempty"`
	Topic          string             `json:"topic,omitempty"`
	TotalQuestions int                `json:"totalQuestions"`
	Questions      []PracticeQuestion `json:"questions"`
}

type PracticeFeedback struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type PracticeSummary struct {
	SessionID        string    `json:"sessionId"`
	TotalQuestions   int       `json:"totalQuestions"`
	CorrectAnswers   int       `json:"correctAnswers"`
	IncorrectAnswers int       `json:"incorrectAnswers"`
	SkippedQuestions int       `json:"skippedQuestions"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	Accuracy         int       `json:"accuracy"`
	CompletedAt      time.Time `json:"completedAt"`
}

// StartPractice picks up to count approved questions matching the filters in a
// random order. Fewer matches simply make a shorter session.
func (s *PracticeService) StartPractice(ctx context.Context, studentID string, req StartPracticeRequest) (view *PracticeView, err error) {
	ctx, span := tracing.StartSpan(ctx, "PracticeService.StartPractice",
		attribute.String("practice.subject", req.Subject),
		attribute.String("practice.topic", req.Topic),
	)
	defer func() { tracing.End(span, err) }()

	ids, err := s.MCQs.ListApprovedIDs(ctx, req.Subject, req.Topic)
	if err != nil {
		return nil, fmt.Errorf("list practice questions: %w", err)
	}

	session := &model.PracticeSession{
		StudentID: studentID,
		Subject:   req.Subject,
		Topic:     req.Topic,
	}
	session.ID = model.GenerateUUID()

	selected := util.Shuffle(ids, util.SeedFromKey(session.ID))
	if n := s.count(req.Count); len(selected) > n {
		selected = selected[:n]
	}

	mcqs, err := s.MCQs.FindByIDs(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("load practice questions: %w", err)
	}

	view = &PracticeView{
		SessionID: session.ID,
		Subject:   req.Subject,
		Topic:     req.Topic,
		Questions: make([]PracticeQuestion, 0, len(selected)),
	}
	for _, id := range selected {
		m, ok := mcqs[id]
		if !ok {
			continue
		}
		view.Questions = append(view.Questions, PracticeQuestion{
			MCQID:      m.ID,
			Question:   m.Question,
			Options:    m.Options,
			Subject:    m.Subject,
			Topic:      m.Topic,
			Difficulty: m.Difficulty,
		})
	}
	view.TotalQuestions = len(view.Questions)
	session.TotalQuestions = view.TotalQuestions

	ids = make([]string, len(view.Questions))
	for i, q := range view.Questions {
		ids[i] = q.MCQID
	}
	if err := s.Sessions.CreateSession(ctx, session, ids); err != nil {
		return nil, fmt.Errorf("create practice session: %w", err)
	}

	logger.Log.Info("practice session started",
		zap.String("sessionId", session.ID),
		zap.String("studentId", studentID),
		zap.Int("totalQuestions", session.TotalQuestions),
	)
	return view, nil
}

// SubmitPracticeAnswer grades one answer against the key straight away. Only
// questions the session was started with can be answered.
func (s *PracticeService) SubmitPracticeAnswer(ctx context.Context, studentID, sessionID, mcqID, answer string, timeSpent int) (fb *PracticeFeedback, err error) {
	ctx, span := tracing.StartSpan(ctx, "PracticeService.SubmitPracticeAnswer",
		attribute.String("practice.session_id", sessionID),
		attribute.String("mcq.id", mcqID),
	)
	defer func() { tracing.End(span, err) }()

	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", util.ErrInvalidInput)
	}
	session, err := s.ownSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, util.ErrSessionCompleted
	}
	inSession, err := s.Sessions.HasQuestion(ctx, sessionID, mcqID)
	if err != nil {
		return nil, fmt.Errorf("check practice question: %w", err)
	}
	if !inSession {
		return nil, util.ErrNotFound
	}
	m, err := s.MCQs.FindByID(ctx, mcqID)
	if err != nil {
		return nil, err
	}

	if timeSpent < 0 {
		timeSpent = 0
	}
	correct := scoring.SameOption(answer, m.CorrectAnswer)
	err = s.Sessions.RecordAnswer(ctx, &model.PracticeResponse{
		SessionID:        sessionID,
		MCQID:            mcqID,
		SelectedAnswer:   strings.TrimSpace(answer),
		IsCorrect:        correct,
		TimeSpentSeconds: timeSpent,
	})
	if err != nil {
		return nil, err
	}

	monitoring.PracticeAnswers.WithLabelValues(strconv.FormatBool(correct)).Inc()
	return &PracticeFeedback{
		IsCorrect:     correct,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation,
	}, nil
}

// CompletePracticeSession closes the session once and reports its counters.
func (s *PracticeService) CompletePracticeSession(ctx context.Context, studentID, sessionID string) (summary *PracticeSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "PracticeService.CompletePracticeSession", attribute.String("practice.session_id", sessionID))
	defer func() { tracing.End(span, err) }()

	session, err := s.ownSession(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, util.ErrSessionCompleted
	}

	done, err := s.Sessions.Complete(ctx, sessionID, s.Clock.Now())
	if err != nil {
		return nil, err
	}

	summary = &PracticeSummary{
		SessionID:        done.ID,
		TotalQuestions:   done.TotalQuestions,
		CorrectAnswers:   done.CorrectAnswers,
		IncorrectAnswers: done.IncorrectAnswers,
		SkippedQuestions: done.SkippedQuestions,
		TimeSpentSeconds: done.TimeSpentSeconds,
		Accuracy:         Accuracy(done.CorrectAnswers, done.IncorrectAnswers),
	}
	if done.CompletedAt != nil {
		summary.CompletedAt = *done.CompletedAt
	}

	logger.Log.Info("practice session completed",
		zap.String("sessionId", done.ID),
		zap.Int("correct", done.CorrectAnswers),
		zap.Int("incorrect", done.IncorrectAnswers),
		zap.Int("skipped", done.SkippedQuestions),
	)
	return summary, nil
}

// ListPracticeSessions pages through the student's sessions, newest first.
func (s *PracticeService) ListPracticeSessions(ctx context.Context, studentID string, page, limit int) ([]model.PracticeSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Sessions.ListByStudent(ctx, studentID, page, limit)
}

func (s *PracticeService) ownSession(ctx context.Context, studentID, sessionID string) (*model.PracticeSession, error) {
	session, err := s.Sessions.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, util.ErrNotFound
	}
	return session, nil
}

// Accuracy is the rounded share of correct answers among answered ones.
func Accuracy(correct, incorrect int) int {
	answered := correct + incorrect
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}
