package query

import "strconv"

// Paginate returns the half-open window [(page-1)*pageSize, page*pageSize)
// of items, clipped to the slice bounds. Pages below 1 are treated as 1.
// A window past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || page-1 > len(items)/pageSize {
		return []T{}
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// ParsePage reads a page query parameter, defaulting to 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
