package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginate(t *testing.T) {
	items := seq(12)

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 1, pageSize: 10, want: seq(10)},
		{name: "partial last page", page: 2, pageSize: 10, want: []int{11, 12}},
		{name: "past the end", page: 3, pageSize: 10, want: []int{}},
		{name: "far past the end", page: 1000, pageSize: 10, want: []int{}},
		{name: "zero page treated as first", page: 0, pageSize: 10, want: seq(10)},
		{name: "negative page treated as first", page: -4, pageSize: 10, want: seq(10)},
		{name: "exact fit", page: 3, pageSize: 4, want: []int{9, 10, 11, 12}},
		{name: "zero page size", page: 1, pageSize: 0, want: []int{}},
		{name: "huge page does not overflow", page: math.MaxInt, pageSize: 10, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestPaginateBounds(t *testing.T) {
	for n := 0; n <= 25; n++ {
		items := seq(n)
		for size := 1; size <= 7; size++ {
			pages := (n + size - 1) / size
			for page := 1; page <= pages+2; page++ {
				start := min((page-1)*size, n)
				end := min(page*size, n)
				assert.Equal(t, items[start:end], Paginate(items, page, size), "n=%d size=%d page=%d", n, size, page)
			}
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	assert.Equal(t, []string{}, Paginate([]string(nil), 1, 10))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 2, ParsePage("2"))
	assert.Equal(t, 1000, ParsePage("1000"))
}
