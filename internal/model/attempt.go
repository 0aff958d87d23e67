package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptSubmitted  AttemptStatus = "SUBMITTED"
)

// TestAttempt is one timed pass by one student through one test.
//
// ActiveKey holds "testId:studentId" while the attempt is IN_PROGRESS and NULL
// afterwards. Its unique index is what keeps a second in-progress attempt out.
type TestAttempt struct {
	UUIDBase
	TestID           string        `gorm:"uniqueIndex:idx_attempt_number;index:idx_attempt_test_student;type:varchar(36);not null" json:"testId"`
	StudentID        string        `gorm:"uniqueIndex:idx_attempt_number;index:idx_attempt_test_student;type:varchar(36);not null" json:"studentId"`
	AttemptNumber    int           `gorm:"uniqueIndex:idx_attempt_number;not null" json:"attemptNumber"`
	Status           AttemptStatus `gorm:"size:20;index;not null" json:"status"`
	ActiveKey        *string       `gorm:"size:80;uniqueIndex" json:"-"`
	StartedAt        time.Time     `json:"startedAt"`
	SubmittedAt      *time.Time    `json:"submittedAt,omitempty"`
	IPAddress        string        `gorm:"size:64" json:"-"`
	UserAgent        string        `gorm:"size:255" json:"-"`
	TotalScore       float64       `gorm:"default:0" json:"totalScore"`
	TotalCorrect     int           `gorm:"default:0" json:"totalCorrect"`
	TotalIncorrect   int           `gorm:"default:0" json:"totalIncorrect"`
	TotalSkipped     int           `gorm:"default:0" json:"totalSkipped"`
	PercentageScore  float64       `gorm:"default:0" json:"percentageScore"`
	IsPassed         bool          `gorm:"default:false" json:"isPassed"`
	TimeSpentSeconds int           `gorm:"default:0" json:"timeSpentSeconds"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// TestResponse is the student's answer to one question of an attempt. A nil
// SelectedAnswer means the student cleared or skipped it.
type TestResponse struct {
	UUIDBase
	AttemptID        string     `gorm:"uniqueIndex:idx_response_attempt_mcq;type:varchar(36);not null" json:"attemptId"`
	MCQID            string     `gorm:"column:mcq_id;uniqueIndex:idx_response_attempt_mcq;type:varchar(36);not null" json:"mcqId"`
	QuestionOrder    int        `gorm:"default:0" json:"questionOrder"`
	SelectedAnswer   *string    `gorm:"size:20" json:"selectedAnswer"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	AnsweredAt       *time.Time `json:"answeredAt,omitempty"`
	IsCorrect        *bool      `json:"isCorrect,omitempty"`
	MarksAwarded     *float64   `json:"marksAwarded,omitempty"`
}

func (TestResponse) TableName() string {
	return "test_responses"
}
