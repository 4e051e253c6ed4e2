package query

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

var quizCorpus = []domain.Question{
	{ID: 1, Text: "q1", Category: 1},
	{ID: 2, Text: "q2", Category: 1},
	{ID: 6, Text: "q6", Category: 5},
	{ID: 7, Text: "q7", Category: 5},
	{ID: 8, Text: "q8", Category: 5},
	{ID: 10, Text: "q10", Category: 3},
}

func categoryRef(id domain.CategoryID) *domain.CategoryID {
	return &id
}

func TestNextQuestionExcludesPrevious(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	req := QuizRequest{CategoryID: categoryRef(5), PreviousIDs: []int64{6}}

	seen := map[int64]int{}
	for i := 0; i < 500; i++ {
		res, err := NextQuestion(req, testCategories, quizCorpus, rng)
		require.NoError(t, err)
		require.NotNil(t, res.Question)
		assert.Equal(t, "Entertainment", res.CurrentCategory)
		assert.Equal(t, domain.CategoryID(5), res.Question.Category)
		assert.NotEqual(t, int64(6), res.Question.ID)
		seen[res.Question.ID]++
	}

	assert.Len(t, seen, 2)
	assert.Positive(t, seen[7])
	assert.Positive(t, seen[8])
}

func TestNextQuestionAllCategories(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, req := range []QuizRequest{
		{},
		{CategoryID: categoryRef(AllCategories)},
	} {
		seen := map[int64]bool{}
		for i := 0; i < 300; i++ {
			res, err := NextQuestion(req, testCategories, quizCorpus, rng)
			require.NoError(t, err)
			require.NotNil(t, res.Question)
			assert.Equal(t, AllCategoriesLabel, res.CurrentCategory)
			seen[res.Question.ID] = true
		}
		assert.Len(t, seen, len(quizCorpus))
	}
}

func TestNextQuestionNeverRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var previous []int64

	for range quizCorpus {
		res, err := NextQuestion(QuizRequest{PreviousIDs: previous}, testCategories, quizCorpus, rng)
		require.NoError(t, err)
		require.NotNil(t, res.Question)
		assert.NotContains(t, previous, res.Question.ID)
		previous = append(previous, res.Question.ID)
	}

	res, err := NextQuestion(QuizRequest{PreviousIDs: previous}, testCategories, quizCorpus, rng)
	require.NoError(t, err)
	assert.Nil(t, res.Question)
}

func TestNextQuestionExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	req := QuizRequest{CategoryID: categoryRef(5), PreviousIDs: []int64{6, 7, 8}}

	res, err := NextQuestion(req, testCategories, quizCorpus, rng)
	require.NoError(t, err)
	assert.Nil(t, res.Question)
	assert.Equal(t, "Entertainment", res.CurrentCategory)
}

func TestNextQuestionCategoryWithoutQuestions(t *testing.T) {
	res, err := NextQuestion(QuizRequest{CategoryID: categoryRef(6)}, testCategories, quizCorpus, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Nil(t, res.Question)
	assert.Equal(t, "Sports", res.CurrentCategory)
}

func TestNextQuestionUnknownCategory(t *testing.T) {
	_, err := NextQuestion(QuizRequest{CategoryID: categoryRef(9), PreviousIDs: []int64{6}}, testCategories, quizCorpus, rand.New(rand.NewSource(1)))
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnprocessable, kind)
	assert.True(t, errors.Is(err, domain.ErrCategoryNotFound))
}

func TestNextQuestionCategoryIDForms(t *testing.T) {
	var numeric, str struct {
		ID domain.CategoryID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 5}`), &numeric))
	require.NoError(t, json.Unmarshal([]byte(`{"id": "5"}`), &str))
	require.Equal(t, numeric.ID, str.ID)

	a, err := NextQuestion(QuizRequest{CategoryID: &numeric.ID}, testCategories, quizCorpus, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	b, err := NextQuestion(QuizRequest{CategoryID: &str.ID}, testCategories, quizCorpus, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Chi-square goodness of fit against the uniform distribution.
func TestNextQuestionUniform(t *testing.T) {
	const trials = 3000
	rng := rand.New(rand.NewSource(2024))

	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		res, err := NextQuestion(QuizRequest{}, testCategories, quizCorpus, rng)
		require.NoError(t, err)
		counts[res.Question.ID]++
	}

	k := len(quizCorpus)
	require.Len(t, counts, k)

	expected := float64(trials) / float64(k)
	chi2 := 0.0
	for _, q := range quizCorpus {
		d := float64(counts[q.ID]) - expected
		chi2 += d * d / expected
	}

	// critical value for 5 degrees of freedom at p = 0.001
	assert.Less(t, chi2, 20.515, "counts: %v", counts)
}

func TestNewRandConcurrent(t *testing.T) {
	rng := NewRand(99)
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				n := rng.Intn(3)
				assert.True(t, n >= 0 && n < 3)
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
