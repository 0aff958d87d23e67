package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func fiveQuestions() []Question {
	qs := make([]Question, 5)
	for i := range qs {
		qs[i] = Question{MCQID: fmt.Sprintf("q%d", i+1), CorrectAnswer: "A", Marks: 1}
	}
	return qs
}

func TestScoreNegativeMarkingExample(t *testing.T) {
	answers := map[string]*string{
		"q1": strPtr("A"),
		"q2": strPtr("A"),
		"q3": strPtr("a"),
		"q4": strPtr("B"),
		// q5 never answered
	}

	res := Score(fiveQuestions(), answers, Policy{
		NegativeMarking:   true,
		NegativeMarkValue: 0.25,
		TotalMarks:        5,
		PassingMarks:      floatPtr(3),
	})

	assert.InDelta(t, 2.75, res.TotalScore, 1e-9)
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 1, res.Incorrect)
	assert.Equal(t, 1, res.Skipped)
	assert.InDelta(t, 55.00, res.PercentageScore, 1e-9)
	assert.False(t, res.IsPassed)

	assert.Len(t, res.Grades, 5)
	assert.InDelta(t, -0.25, res.Grades[3].MarksAwarded, 1e-9)
	assert.False(t, res.Grades[4].Answered)
}

func TestScoreSkippedForms(t *testing.T) {
	answers := map[string]*string{
		"q1": nil,
		"q2": strPtr(""),
		"q3": strPtr("  "),
	}
	res := Score(fiveQuestions(), answers, Policy{NegativeMarking: true, NegativeMarkValue: 1, TotalMarks: 5})

	assert.Equal(t, 5, res.Skipped)
	assert.Zero(t, res.TotalScore)
	assert.False(t, res.IsPassed)
}

func TestScoreDefaultMarksAndPassBar(t *testing.T) {
	qs := []Question{
		{MCQID: "q1", CorrectAnswer: "C"},
		{MCQID: "q2", CorrectAnswer: "D", Marks: 3},
	}
	res := Score(qs, map[string]*string{"q1": strPtr("C")}, Policy{TotalMarks: 4})

	assert.InDelta(t, 1, res.TotalScore, 1e-9)
	assert.InDelta(t, 25, res.PercentageScore, 1e-9)
	assert.False(t, res.IsPassed, "25% is below the default 40% bar")

	res = Score(qs, map[string]*string{"q2": strPtr("D")}, Policy{TotalMarks: 4})
	assert.InDelta(t, 75, res.PercentageScore, 1e-9)
	assert.True(t, res.IsPassed)
}

func TestScoreCanGoNegative(t *testing.T) {
	answers := map[string]*string{}
	for _, q := range fiveQuestions() {
		answers[q.MCQID] = strPtr("B")
	}
	res := Score(fiveQuestions(), answers, Policy{NegativeMarking: true, NegativeMarkValue: 0.5, TotalMarks: 5, PassingMarks: floatPtr(0)})

	assert.InDelta(t, -2.5, res.TotalScore, 1e-9)
	assert.InDelta(t, -50, res.PercentageScore, 1e-9)
	assert.False(t, res.IsPassed)
}

func TestScoreZeroTotalMarks(t *testing.T) {
	res := Score(fiveQuestions(), map[string]*string{"q1": strPtr("A")}, Policy{})
	assert.Zero(t, res.PercentageScore)
}

// Every combination of answer states over a small test: without negative marking
// the score stays in [0, totalMarks]; with it each wrong answer costs exactly the
// penalty; the three counters always cover the whole test.
func TestScoreProperties(t *testing.T) {
	qs := []Question{
		{MCQID: "q1", CorrectAnswer: "A", Marks: 2},
		{MCQID: "q2", CorrectAnswer: "B", Marks: 1},
		{MCQID: "q3", CorrectAnswer: "C", Marks: 1.5},
		{MCQID: "q4", CorrectAnswer: "D", Marks: 0.5},
	}
	total := 5.0
	states := []*string{nil, strPtr("A"), strPtr("B"), strPtr("C"), strPtr("D")}

	var walk func(i int, answers map[string]*string)
	walk = func(i int, answers map[string]*string) {
		if i == len(qs) {
			plain := Score(qs, answers, Policy{TotalMarks: total})
			assert.GreaterOrEqual(t, plain.TotalScore, 0.0)
			assert.LessOrEqual(t, plain.TotalScore, total)
			assert.Equal(t, len(qs), plain.Correct+plain.Incorrect+plain.Skipped)

			neg := Score(qs, answers, Policy{TotalMarks: total, NegativeMarking: true, NegativeMarkValue: 0.25})
			assert.InDelta(t, plain.TotalScore-0.25*float64(plain.Incorrect), neg.TotalScore, 1e-9)
			assert.Equal(t, len(qs), neg.Correct+neg.Incorrect+neg.Skipped)
			return
		}
		for _, s := range states {
			answers[qs[i].MCQID] = s
			walk(i+1, answers)
		}
		delete(answers, qs[i].MCQID)
	}
	walk(0, map[string]*string{})
}
