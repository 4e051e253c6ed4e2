package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// CatalogRepository implements the domain.CatalogStore interface
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		pool: pool,
	}
}

// ListQuestions retrieves every question ordered by id
func (r *CatalogRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

// InsertQuestion creates a new question
func (r *CatalogRepository) InsertQuestion(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		question.Text,
		question.Answer,
		int64(question.Category),
		question.Difficulty,
	).Scan(&question.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// DeleteQuestion deletes a question, reporting whether a row was removed
func (r *CatalogRepository) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountQuestions returns the number of stored questions
func (r *CatalogRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var q domain.Question
	var category int64
	if err := row.Scan(&q.ID, &q.Text, &q.Answer, &category, &q.Difficulty); err != nil {
		return domain.Question{}, err
	}
	q.Category = domain.CategoryID(category)
	return q, nil
}
