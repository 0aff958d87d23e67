// Package scoring grades a finished attempt. It is a pure function of the
// responses, the answer key and the marking policy; nothing here touches storage.
package scoring

import (
	"strings"

	"github.com/Env1sage/LMS-MED-sub001/internal/util"
)

// DefaultPassPercentage is the pass bar used when a test has no passing marks.
const DefaultPassPercentage = 40.0

// Policy is the marking scheme of one test.
type Policy struct {
	NegativeMarking   bool
	NegativeMarkValue float64
	TotalMarks        float64
	PassingMarks      *float64
}

// Question is one gradable item: its bank id, the key and the marks it carries.
type Question struct {
	MCQID         string
	CorrectAnswer string
	Marks         float64
}

// Grade is the outcome for one question.
type Grade struct {
	MCQID        string
	Answered     bool
	IsCorrect    bool
	MarksAwarded float64
}

type Result struct {
	TotalScore      float64
	Correct         int
	Incorrect       int
	Skipped         int
	PercentageScore float64
	IsPassed        bool
	Grades          []Grade
}

// Score grades every question of the test. answers maps mcq id to the selected
// option; a missing entry, a nil selection and a blank one are all skipped.
func Score(questions []Question, answers map[string]*string, policy Policy) Result {
	res := Result{Grades: make([]Grade, 0, len(questions))}

	for _, q := range questions {
		g := Grade{MCQID: q.MCQID}
		selected, ok := answers[q.MCQID]

		switch {
		case !ok || selected == nil || strings.TrimSpace(*selected) == "":
			res.Skipped++
		case SameOption(*selected, q.CorrectAnswer):
			g.Answered = true
			g.IsCorrect = true
			g.MarksAwarded = marksFor(q)
			res.Correct++
		default:
			g.Answered = true
			if policy.NegativeMarking {
				g.MarksAwarded = -policy.NegativeMarkValue
			}
			res.Incorrect++
		}

		res.TotalScore += g.MarksAwarded
		res.Grades = append(res.Grades, g)
	}

	res.PercentageScore = Percentage(res.TotalScore, policy.TotalMarks)
	if policy.PassingMarks != nil {
		res.IsPassed = res.TotalScore >= *policy.PassingMarks
	} else {
		res.IsPassed = res.PercentageScore >= DefaultPassPercentage
	}

	return res
}

// Percentage is total/max*100 rounded to two places, or 0 when max is not positive.
func Percentage(total, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return util.Round2(total / max * 100)
}

// SameOption compares two option labels ignoring case and surrounding space.
func SameOption(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func marksFor(q Question) float64 {
	if q.Marks <= 0 {
		return 1
	}
	return q.Marks
}
