package domain

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CatalogStore defines the persistence operations the catalog service relies on
type CatalogStore interface {
	// ListQuestions retrieves every question ordered by id
	ListQuestions(ctx context.Context) ([]Question, error)

	// ListCategories retrieves every category ordered by id
	ListCategories(ctx context.Context) ([]Category, error)

	// GetCategory retrieves a category by its ID
	GetCategory(ctx context.Context, id CategoryID) (*Category, error)

	// InsertQuestion stores a new question and assigns its ID
	InsertQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes a question, reporting whether it existed
	DeleteQuestion(ctx context.Context, id int64) (bool, error)

	// CountQuestions returns the number of stored questions
	CountQuestions(ctx context.Context) (int, error)

	// CountCategories returns the number of stored categories
	CountCategories(ctx context.Context) (int, error)
}

// Question represents a trivia question
type Question struct {
	ID         int64      `json:"id"`
	Text       string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   CategoryID `json:"category"`
	Difficulty int        `json:"difficulty"`
}

// Difficulty rates a question from 1 to 5. Like CategoryID it decodes from
// a JSON number or a numeric string.
type Difficulty int

// UnmarshalJSON accepts 3, "3" and null
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	v, ok, err := unmarshalInt(data)
	if err != nil {
		return fmt.Errorf("invalid difficulty: %w", err)
	}
	if ok {
		*d = Difficulty(v)
	}
	return nil
}
