package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CatalogStore is an in-memory domain.CatalogStore. It backs tests and
// local runs without Postgres.
type CatalogStore struct {
	mu         sync.RWMutex
	questions  map[int64]domain.Question
	categories map[domain.CategoryID]domain.Category
	nextID     int64
}

// NewCatalogStore creates a store holding the given categories and questions.
// Questions keep their ids; later inserts continue after the highest one.
func NewCatalogStore(categories []domain.Category, questions []domain.Question) *CatalogStore {
	s := &CatalogStore{
		questions:  make(map[int64]domain.Question, len(questions)),
		categories: make(map[domain.CategoryID]domain.Category, len(categories)),
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID > s.nextID {
			s.nextID = q.ID
		}
	}
	return s
}

// DefaultCategories are the categories the schema migrations seed
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

// ListQuestions retrieves every question ordered by id
func (s *CatalogStore) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

// ListCategories retrieves every category ordered by id
func (s *CatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetCategory retrieves a category by its ID
func (s *CatalogStore) GetCategory(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

// InsertQuestion stores a new question and assigns its ID
func (s *CatalogStore) InsertQuestion(ctx context.Context, question *domain.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[question.Category]; !ok {
		return domain.ErrCategoryNotFound
	}

	s.nextID++
	question.ID = s.nextID
	s.questions[question.ID] = *question
	return nil
}

// DeleteQuestion removes a question, reporting whether it existed
func (s *CatalogStore) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return false, nil
	}
	delete(s.questions, id)
	return true, nil
}

// CountQuestions returns the number of stored questions
func (s *CatalogStore) CountQuestions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

// CountCategories returns the number of stored categories
func (s *CatalogStore) CountCategories(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories), nil
}

// SeedQuestions mirrors the questions the schema migrations seed
func SeedQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{ID: 2, Text: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
		{ID: 3, Text: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
		{ID: 4, Text: "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3},
		{ID: 5, Text: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
		{ID: 6, Text: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
		{ID: 7, Text: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
		{ID: 8, Text: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{ID: 9, Text: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
		{ID: 10, Text: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: 3, Difficulty: 2},
		{ID: 11, Text: "Which Dutch graphic artist, initials M C, was a creator of optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1},
		{ID: 12, Text: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
		{ID: 13, Text: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4},
		{ID: 14, Text: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{ID: 15, Text: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
		{ID: 16, Text: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4},
		{ID: 17, Text: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4},
	}
}
