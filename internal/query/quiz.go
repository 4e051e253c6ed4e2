package query

import (
	"math/rand"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// AllCategories is the quiz category id meaning "any category"
	AllCategories domain.CategoryID = 0

	// AllCategoriesLabel is reported as the current category for unscoped quizzes
	AllCategoriesLabel = "All"
)

// Rand is the randomness source used for quiz selection
type Rand interface {
	Intn(n int) int
}

// QuizRequest carries the caller-tracked quiz state for one turn
type QuizRequest struct {
	// CategoryID scopes the quiz; nil or AllCategories means every category
	CategoryID *domain.CategoryID

	// PreviousIDs are the questions already asked this round
	PreviousIDs []int64
}

// QuizResult is the outcome of a successful selection. Question is nil when
// every eligible question has already been asked.
type QuizResult struct {
	Question        *domain.Question
	CurrentCategory string
}

// NextQuestion picks a question uniformly at random from the candidate pool:
// the corpus restricted to the requested category, minus previously asked
// questions. An unknown category is Unprocessable.
func NextQuestion(req QuizRequest, categories []domain.Category, corpus []domain.Question, rng Rand) (*QuizResult, error) {
	result := &QuizResult{CurrentCategory: AllCategoriesLabel}

	scoped := req.CategoryID != nil && *req.CategoryID != AllCategories
	if scoped {
		category, ok := FindCategory(categories, *req.CategoryID)
		if !ok {
			return nil, Unprocessable(domain.ErrCategoryNotFound, "quiz category %d does not exist", *req.CategoryID)
		}
		result.CurrentCategory = category.Type
	}

	pool := candidatePool(req, scoped, corpus)
	if len(pool) == 0 {
		return result, nil
	}

	picked := pool[rng.Intn(len(pool))]
	result.Question = &picked
	return result, nil
}

func candidatePool(req QuizRequest, scoped bool, corpus []domain.Question) []domain.Question {
	asked := make(map[int64]struct{}, len(req.PreviousIDs))
	for _, id := range req.PreviousIDs {
		asked[id] = struct{}{}
	}

	pool := make([]domain.Question, 0, len(corpus))
	for _, q := range corpus {
		if scoped && q.Category != *req.CategoryID {
			continue
		}
		if _, ok := asked[q.ID]; ok {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// lockedRand makes a seeded generator safe for concurrent requests
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand seeded with seed
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
