package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

func TestCatalogStoreOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(DefaultCategories(), []domain.Question{
		{ID: 9, Text: "nine", Category: 1},
		{ID: 2, Text: "two", Category: 2},
		{ID: 5, Text: "five", Category: 1},
	})

	questions, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, int64(2), questions[0].ID)
	assert.Equal(t, int64(5), questions[1].ID)
	assert.Equal(t, int64(9), questions[2].ID)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 6)
	for i, c := range categories {
		assert.Equal(t, domain.CategoryID(i+1), c.ID)
	}
}

func TestCatalogStoreInsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(DefaultCategories(), []domain.Question{{ID: 20, Text: "twenty", Category: 3}})

	q := &domain.Question{Text: "Who wrote the novel Anansi Boys?", Answer: "Neil Gaiman", Category: 4, Difficulty: 3}
	require.NoError(t, store.InsertQuestion(ctx, q))
	assert.Equal(t, int64(21), q.ID)

	count, err := store.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	deleted, err := store.DeleteQuestion(ctx, 21)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteQuestion(ctx, 21)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCatalogStoreInsertUnknownCategory(t *testing.T) {
	store := NewCatalogStore(DefaultCategories(), nil)

	err := store.InsertQuestion(context.Background(), &domain.Question{Text: "x", Category: 42})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCatalogStoreGetCategory(t *testing.T) {
	store := NewCatalogStore(DefaultCategories(), nil)

	c, err := store.GetCategory(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Entertainment", c.Type)

	_, err = store.GetCategory(context.Background(), 100)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCatalogStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogStore(DefaultCategories(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.InsertQuestion(ctx, &domain.Question{Text: "q", Category: 1}))
		}()
	}
	wg.Wait()

	questions, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 50)
	for i, q := range questions {
		assert.Equal(t, int64(i+1), q.ID)
	}
}

func TestSeedQuestionsReferenceDefaultCategories(t *testing.T) {
	store := NewCatalogStore(DefaultCategories(), SeedQuestions())
	ctx := context.Background()

	questions, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 17)

	for _, q := range questions {
		_, err := store.GetCategory(ctx, q.Category)
		assert.NoError(t, err, "question %d", q.ID)
	}
}
