package model

import "time"

type TestStatus string

const (
	TestDraft     TestStatus = "DRAFT"
	TestScheduled TestStatus = "SCHEDULED"
	TestActive    TestStatus = "ACTIVE"
	TestCompleted TestStatus = "COMPLETED"
)

// Test is a published assessment. It is owned by the course management side and
// only read by the attempt engine.
type Test struct {
	UUIDBase
	Title                 string     `gorm:"size:255;not null" json:"title"`
	Subject               string     `gorm:"size:100;index" json:"subject"`
	Type                  string     `gorm:"size:50" json:"type"`
	Status                TestStatus `gorm:"size:20;index;default:'DRAFT'" json:"status"`
	ScheduledStart        *time.Time `json:"scheduledStart,omitempty"`
	ScheduledEnd          *time.Time `json:"scheduledEnd,omitempty"`
	DurationMinutes       int        `gorm:"default:0" json:"durationMinutes"`
	TotalQuestions        int        `gorm:"default:0" json:"totalQuestions"`
	TotalMarks            float64    `gorm:"default:0" json:"totalMarks"`
	PassingMarks          *float64   `json:"passingMarks,omitempty"`
	MaxAttempts           int        `gorm:"default:1" json:"maxAttempts"`
	AllowMultipleAttempts bool       `gorm:"default:false" json:"allowMultipleAttempts"`
	ShuffleQuestions      bool       `gorm:"default:false" json:"shuffleQuestions"`
	NegativeMarking       bool       `gorm:"default:false" json:"negativeMarking"`
	NegativeMarkValue     float64    `gorm:"default:0" json:"negativeMarkValue"`
	ShowAnswersAfter      bool       `gorm:"default:false" json:"showAnswersAfter"`
	ShowExplanations      bool       `gorm:"default:false" json:"showExplanations"`
}

func (Test) TableName() string {
	return "tests"
}

// TestQuestion places a bank question inside a test with its marks.
type TestQuestion struct {
	UUIDBase
	TestID        string  `gorm:"uniqueIndex:idx_test_question;type:varchar(36);not null" json:"testId"`
	MCQID         string  `gorm:"column:mcq_id;uniqueIndex:idx_test_question;type:varchar(36);not null" json:"mcqId"`
	QuestionOrder int     `gorm:"default:0" json:"questionOrder"`
	Marks         float64 `gorm:"default:1" json:"marks"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

// TestAssignment links a test to one student. Its existence is the only gate for
// starting an attempt.
type TestAssignment struct {
	UUIDBase
	TestID    string     `gorm:"uniqueIndex:idx_assignment_test_student;type:varchar(36);not null" json:"testId"`
	StudentID string     `gorm:"uniqueIndex:idx_assignment_test_student;type:varchar(36);not null" json:"studentId"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

func (TestAssignment) TableName() string {
	return "test_assignments"
}
