package query

import (
	"strings"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Search returns the questions whose text contains term, ignoring case,
// in corpus order. No matches is a successful empty result.
func Search(term string, corpus []domain.Question) ([]domain.Question, error) {
	if strings.TrimSpace(term) == "" {
		return nil, InvalidRequest("search term is required")
	}

	needle := strings.ToLower(term)
	matches := make([]domain.Question, 0)
	for _, q := range corpus {
		if strings.Contains(strings.ToLower(q.Text), needle) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}
