package model

import "gorm.io/datatypes"

type MCQStatus string

const (
	MCQPending  MCQStatus = "PENDING"
	MCQApproved MCQStatus = "APPROVED"
	MCQRejected MCQStatus = "REJECTED"
)

// MCQ is a question bank entry. Options is a JSON object keyed by option letter.
type MCQ struct {
	UUIDBase
	Subject       string         `gorm:"size:100;index" json:"subject"`
	Topic         string         `gorm:"size:100;index" json:"topic"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"type:json" json:"options"`
	CorrectAnswer string         `gorm:"size:20;not null" json:"-"`
	Explanation   string         `gorm:"type:text" json:"-"`
	Difficulty    string         `gorm:"size:20" json:"difficulty"`
	Status        MCQStatus      `gorm:"size:20;index;default:'PENDING'" json:"status"`
}

func (MCQ) TableName() string {
	return "mcqs"
}
