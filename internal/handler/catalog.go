package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/query"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// CatalogHandler handles catalog and quiz HTTP requests
type CatalogHandler struct {
	catalog  *service.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// Register registers the catalog routes on g
func (h *CatalogHandler) Register(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.GET("/categories/:id/questions", h.QuestionsInCategory)
	g.GET("/questions", h.ListQuestions)
	g.POST("/questions", h.CreateQuestion)
	g.DELETE("/questions/:id", h.DeleteQuestion)
	g.POST("/questions/search", h.SearchQuestions)
	g.POST("/search", h.SearchQuestions)
	g.POST("/quizzes", h.PlayQuiz)
}

// CategoriesResponse is the body of GET /categories
type CategoriesResponse struct {
	Success         bool              `json:"success"`
	Categories      []domain.Category `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

// QuestionsResponse is the body of GET /questions
type QuestionsResponse struct {
	Success         bool                         `json:"success"`
	Questions       []domain.Question            `json:"questions"`
	TotalQuestions  int                          `json:"total_questions"`
	CurrentCategory *domain.CategoryID           `json:"current_category"`
	Categories      map[domain.CategoryID]string `json:"categories"`
}

// CategoryQuestionsResponse is the body of GET /categories/:id/questions
type CategoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory domain.CategoryID `json:"current_category"`
}

// SearchResponse is the body of POST /questions/search
type SearchResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreateQuestionResponse is the body of POST /questions
type CreateQuestionResponse struct {
	Success        bool              `json:"success"`
	Created        int64             `json:"created"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// DeleteQuestionResponse is the body of DELETE /questions/:id
type DeleteQuestionResponse struct {
	Success        bool                         `json:"success"`
	Deleted        int64                        `json:"deleted"`
	Questions      []domain.Question            `json:"questions"`
	TotalQuestions int                          `json:"total_questions"`
	Categories     map[domain.CategoryID]string `json:"categories"`
}

// QuizResponse is the body of POST /quizzes. Question is null once the
// round has run out of questions.
type QuizResponse struct {
	Success         bool             `json:"success"`
	Question        *domain.Question `json:"question"`
	CurrentCategory string           `json:"current_category"`
}

// SearchRequest represents a question search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm" validate:"required"`
}

// QuizCategory identifies the category a quiz is played in; id 0 means all
type QuizCategory struct {
	Type string            `json:"type"`
	ID   domain.CategoryID `json:"id"`
}

// QuizRequest represents one quiz turn
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions" validate:"dive,gt=0"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	page, err := h.catalog.ListCategories(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:         true,
		Categories:      page.Categories,
		TotalCategories: page.TotalCategories,
	})
}

// ListQuestions handles GET /questions
func (h *CatalogHandler) ListQuestions(c echo.Context) error {
	page, err := h.catalog.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, QuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.TotalQuestions,
		Categories:     page.Categories,
	})
}

// QuestionsInCategory handles GET /categories/:id/questions
func (h *CatalogHandler) QuestionsInCategory(c echo.Context) error {
	id, err := domain.ParseCategoryID(c.Param("id"))
	if err != nil {
		return query.NotFound("category %q not found", c.Param("id"))
	}

	result, err := h.catalog.QuestionsInCategory(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

// SearchQuestions handles POST /questions/search
func (h *CatalogHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.validate.Struct(req); err != nil {
		return query.InvalidRequest("searchTerm is required")
	}

	result, err := h.catalog.SearchQuestions(c.Request().Context(), req.SearchTerm, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.TotalQuestions,
	})
}

// CreateQuestion handles POST /questions
func (h *CatalogHandler) CreateQuestion(c echo.Context) error {
	var req service.CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	result, err := h.catalog.CreateQuestion(c.Request().Context(), req, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateQuestionResponse{
		Success:        true,
		Created:        result.Created,
		Questions:      result.Questions,
		TotalQuestions: result.TotalQuestions,
	})
}

// DeleteQuestion handles DELETE /questions/:id
func (h *CatalogHandler) DeleteQuestion(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return query.NotFound("question %q not found", c.Param("id"))
	}

	result, err := h.catalog.DeleteQuestion(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeleteQuestionResponse{
		Success:        true,
		Deleted:        result.Deleted,
		Questions:      result.Questions,
		TotalQuestions: result.TotalQuestions,
		Categories:     result.Categories,
	})
}

// PlayQuiz handles POST /quizzes
func (h *CatalogHandler) PlayQuiz(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.validate.Struct(req); err != nil {
		return query.InvalidRequest("invalid quiz request: %v", err)
	}

	turn := query.QuizRequest{PreviousIDs: req.PreviousQuestions}
	if req.QuizCategory != nil {
		turn.CategoryID = &req.QuizCategory.ID
	}

	result, err := h.catalog.NextQuestion(c.Request().Context(), turn)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:         true,
		Question:        result.Question,
		CurrentCategory: result.CurrentCategory,
	})
}

func pageParam(c echo.Context) int {
	return query.ParsePage(c.QueryParam("page"))
}
