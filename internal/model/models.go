package model

// All lists every table the service migrates, in dependency order.
func All() []interface{} {
	return []interface{}{
		&MCQ{},
		&Test{},
		&TestQuestion{},
		&TestAssignment{},
		&TestAttempt{},
		&TestResponse{},
		&PracticeSession{},
		&PracticeSessionQuestion{},
		&PracticeResponse{},
	}
}
