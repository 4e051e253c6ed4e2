package query

import "github.com/zizouhuweidi/trivia/internal/domain"

// FindCategory looks up a category by id
func FindCategory(categories []domain.Category, id domain.CategoryID) (domain.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// InCategory returns the questions that belong to the given category.
// An unknown category is NotFound; a known category with no questions is
// an empty success.
func InCategory(id domain.CategoryID, categories []domain.Category, corpus []domain.Question) ([]domain.Question, error) {
	if _, ok := FindCategory(categories, id); !ok {
		return nil, NotFound("category %d not found", id)
	}

	matches := make([]domain.Question, 0)
	for _, q := range corpus {
		if q.Category == id {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

// CategoryTypes maps category ids to their display names, the shape the
// question list responses embed.
func CategoryTypes(categories []domain.Category) map[domain.CategoryID]string {
	types := make(map[domain.CategoryID]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
