package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/query"
)

// CreateQuestionRequest represents the fields of a new question
type CreateQuestionRequest struct {
	Question   string            `json:"question" validate:"required"`
	Answer     string            `json:"answer" validate:"required"`
	Category   domain.CategoryID `json:"category" validate:"required,gt=0"`
	Difficulty domain.Difficulty `json:"difficulty" validate:"required,min=1,max=5"`
}

// QuestionPage is a page of the full question list
type QuestionPage struct {
	Questions      []domain.Question
	TotalQuestions int
	Categories     map[domain.CategoryID]string
}

// CategoryPage is a page of the category list
type CategoryPage struct {
	Categories      []domain.Category
	TotalCategories int
}

// CategoryQuestions is a page of the questions in one category
type CategoryQuestions struct {
	Questions       []domain.Question
	TotalQuestions  int
	CurrentCategory domain.CategoryID
}

// SearchResult is a page of search matches. TotalQuestions counts every
// match, not just the page.
type SearchResult struct {
	Questions      []domain.Question
	TotalQuestions int
}

// CreateResult reports a newly inserted question and the refreshed list page
type CreateResult struct {
	Created        int64
	Questions      []domain.Question
	TotalQuestions int
}

// DeleteResult reports a removed question and the refreshed list page
type DeleteResult struct {
	Deleted        int64
	Questions      []domain.Question
	TotalQuestions int
	Categories     map[domain.CategoryID]string
}

// CatalogService answers catalog queries and quiz turns over a domain.CatalogStore
type CatalogService struct {
	store             domain.CatalogStore
	rng               query.Rand
	events            domain.EventPublisher
	metrics           *metrics.Metrics
	log               *zap.Logger
	validate          *validator.Validate
	questionsPerPage  int
	categoriesPerPage int
}

// NewCatalogService creates a new catalog service. events and m may be nil.
func NewCatalogService(store domain.CatalogStore, cfg config.CatalogConfig, rng query.Rand, events domain.EventPublisher, m *metrics.Metrics, log *zap.Logger) *CatalogService {
	return &CatalogService{
		store:             store,
		rng:               rng,
		events:            events,
		metrics:           m,
		log:               log,
		validate:          validator.New(),
		questionsPerPage:  cfg.QuestionsPerPage,
		categoriesPerPage: cfg.CategoriesPerPage,
	}
}

// ListQuestions returns one page of every question with the category map.
// A page past the end is NotFound.
func (s *CatalogService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	current := query.Paginate(questions, page, s.questionsPerPage)
	if len(current) == 0 {
		return nil, query.NotFound("no questions on page %d", page)
	}

	total, err := s.store.CountQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	categories, err := s.categoryTypes(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:      current,
		TotalQuestions: total,
		Categories:     categories,
	}, nil
}

// ListCategories returns one page of categories. A page past the end is NotFound.
func (s *CatalogService) ListCategories(ctx context.Context, page int) (*CategoryPage, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	current := query.Paginate(categories, page, s.categoriesPerPage)
	if len(current) == 0 {
		return nil, query.NotFound("no categories on page %d", page)
	}

	total, err := s.store.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	return &CategoryPage{Categories: current, TotalCategories: total}, nil
}

// QuestionsInCategory returns one page of the questions filed under id
func (s *CatalogService) QuestionsInCategory(ctx context.Context, id domain.CategoryID, page int) (*CategoryQuestions, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	matches, err := query.InCategory(id, categories, questions)
	if err != nil {
		return nil, err
	}

	return &CategoryQuestions{
		Questions:       query.Paginate(matches, page, s.questionsPerPage),
		TotalQuestions:  len(matches),
		CurrentCategory: id,
	}, nil
}

// SearchQuestions returns one page of the questions whose text contains term
func (s *CatalogService) SearchQuestions(ctx context.Context, term string, page int) (*SearchResult, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	matches, err := query.Search(term, questions)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Questions:      query.Paginate(matches, page, s.questionsPerPage),
		TotalQuestions: len(matches),
	}, nil
}

// CreateQuestion stores a new question and returns the refreshed page
func (s *CatalogService) CreateQuestion(ctx context.Context, req CreateQuestionRequest, page int) (*CreateResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, query.Unprocessable(err, "invalid question")
	}

	question := &domain.Question{
		Text:       req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: int(req.Difficulty),
	}
	if err := s.store.InsertQuestion(ctx, question); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, query.Unprocessable(err, "category %d does not exist", req.Category)
		}
		s.log.Error("failed to insert question", zap.Error(err))
		return nil, query.Unprocessable(err, "failed to insert question")
	}

	s.publish(domain.CatalogEvent{
		Type:       domain.EventQuestionCreated,
		QuestionID: question.ID,
		Category:   question.Category,
	})

	questions, total, err := s.questionWindow(ctx, page)
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		Created:        question.ID,
		Questions:      questions,
		TotalQuestions: total,
	}, nil
}

// DeleteQuestion removes a question and returns the refreshed page.
// An unknown id is NotFound.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id int64, page int) (*DeleteResult, error) {
	deleted, err := s.store.DeleteQuestion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}
	if !deleted {
		return nil, query.NotFound("question %d not found", id)
	}

	s.publish(domain.CatalogEvent{Type: domain.EventQuestionDeleted, QuestionID: id})

	questions, total, err := s.questionWindow(ctx, page)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryTypes(ctx)
	if err != nil {
		return nil, err
	}

	return &DeleteResult{
		Deleted:        id,
		Questions:      questions,
		TotalQuestions: total,
		Categories:     categories,
	}, nil
}

// NextQuestion picks the next quiz question for the caller's round
func (s *CatalogService) NextQuestion(ctx context.Context, req query.QuizRequest) (*query.QuizResult, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	result, err := query.NextQuestion(req, categories, questions, s.rng)
	if err != nil {
		return nil, err
	}

	if result.Question == nil {
		s.metrics.ObserveQuizExhausted(result.CurrentCategory)
	} else {
		s.metrics.ObserveQuestionServed(result.CurrentCategory)
	}
	return result, nil
}

func (s *CatalogService) questionWindow(ctx context.Context, page int) ([]domain.Question, int, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	total, err := s.store.CountQuestions(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	return query.Paginate(questions, page, s.questionsPerPage), total, nil
}

func (s *CatalogService) categoryTypes(ctx context.Context) (map[domain.CategoryID]string, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return query.CategoryTypes(categories), nil
}

func (s *CatalogService) publish(event domain.CatalogEvent) {
	s.metrics.ObserveCatalogChange(event.Type)
	if s.events != nil {
		s.events.Publish(event)
	}
}
