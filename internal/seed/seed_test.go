package seed

import (
	"context"
	"os"
	"testing"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSampleBank(t *testing.T) {
	data, err := os.ReadFile("../../configs/seed/sample_bank.yaml")
	require.NoError(t, err)
	bank, err := Parse(data)
	require.NoError(t, err)

	db := testutil.NewDB(t)
	res, err := Load(context.Background(), db, bank)
	require.NoError(t, err)
	assert.Len(t, res.MCQIDs, len(bank.Questions))
	assert.Len(t, res.TestIDs, len(bank.Tests))

	var test model.Test
	require.NoError(t, db.First(&test, "title = ?", bank.Tests[0].Title).Error)
	assert.Equal(t, len(bank.Tests[0].Questions), test.TotalQuestions)
	assert.Equal(t, model.TestActive, test.Status)
	assert.Positive(t, test.TotalMarks)

	var assignments int64
	require.NoError(t, db.Model(&model.TestAssignment{}).Where("test_id = ?", test.ID).Count(&assignments).Error)
	assert.Equal(t, int64(len(bank.Tests[0].Students)), assignments)
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte(`
questions:
  - key: q1
    question: "What?"
    options: {A: yes, B: no}
    answer: C
  - key: q1
    question: ""
    options: {A: yes}
    answer: A
tests:
  - title: Broken
    questions:
      - key: q9
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `answer "C" is not an option`)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.Contains(t, err.Error(), "text is required")
	assert.Contains(t, err.Error(), `unknown question "q9"`)
}

func TestLoadRollsBackOnDuplicateAssignment(t *testing.T) {
	bank, err := Parse([]byte(`
questions:
  - key: q1
    question: "What?"
    options: {A: yes, B: no}
    answer: A
tests:
  - title: Twice assigned
    questions:
      - key: q1
    students: [s1, s1]
`))
	require.NoError(t, err)

	db := testutil.NewDB(t)
	_, err = Load(context.Background(), db, bank)
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&model.MCQ{}).Count(&n).Error)
	assert.Zero(t, n)
}
