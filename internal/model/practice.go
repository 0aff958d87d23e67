package model

import "time"

type PracticeSession struct {
	UUIDBase
	StudentID        string     `gorm:"index;type:varchar(36);not null" json:"studentId"`
	Subject          string     `gorm:"size:100" json:"subject,omitempty"`
	Topic            string     `gorm:"size:100" json:"topic,omitempty"`
	TotalQuestions   int        `gorm:"default:0" json:"totalQuestions"`
	CorrectAnswers   int        `gorm:"default:0" json:"correctAnswers"`
	IncorrectAnswers int        `gorm:"default:0" json:"incorrectAnswers"`
	SkippedQuestions int        `gorm:"default:0" json:"skippedQuestions"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// PracticeSessionQuestion records the questions a session was started with;
// only these can be answered in it.
type PracticeSessionQuestion struct {
	UUIDBase
	SessionID     string `gorm:"uniqueIndex:idx_practice_question_session_mcq;type:varchar(36);not null" json:"sessionId"`
	MCQID         string `gorm:"column:mcq_id;uniqueIndex:idx_practice_question_session_mcq;type:varchar(36);not null" json:"mcqId"`
	QuestionOrder int    `gorm:"not null" json:"questionOrder"`
}

func (PracticeSessionQuestion) TableName() string {
	return "practice_session_questions"
}

type PracticeResponse struct {
	UUIDBase
	SessionID        string `gorm:"uniqueIndex:idx_practice_session_mcq;type:varchar(36);not null" json:"sessionId"`
	MCQID            string `gorm:"column:mcq_id;uniqueIndex:idx_practice_session_mcq;type:varchar(36);not null" json:"mcqId"`
	SelectedAnswer   string `gorm:"size:20" json:"selectedAnswer"`
	IsCorrect        bool   `gorm:"default:false" json:"isCorrect"`
	TimeSpentSeconds int    `gorm:"default:0" json:"timeSpentSeconds"`
}

func (PracticeResponse) TableName() string {
	return "practice_responses"
}
