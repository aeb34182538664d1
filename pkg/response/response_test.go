package response

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		pageSize    int
		totalItems  int64
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"empty result set still has one page", 1, 20, 0, 1, false, false},
		{"single partial page", 1, 20, 5, 1, false, false},
		{"exact page boundary", 1, 20, 40, 2, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.pageSize, tc.totalItems)
			assert.Equal(t, tc.page, p.CurrentPage)
			assert.Equal(t, tc.pageSize, p.PageSize)
			assert.Equal(t, tc.totalItems, p.TotalItems)
			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.hasNext, p.HasNext)
			assert.Equal(t, tc.hasPrevious, p.HasPrevious)
		})
	}
}

func TestSuccessPaginated(t *testing.T) {
	w := httptest.NewRecorder()

	SuccessPaginated(w, "Items retrieved successfully", []string{"a", "b"}, NewPagination(1, 20, 2))

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"success": true,
		"message": "Items retrieved successfully",
		"data": {
			"results": ["a", "b"],
			"pagination": {
				"current_page": 1,
				"total_pages": 1,
				"total_items": 2,
				"page_size": 20,
				"has_next": false,
				"has_previous": false
			}
		}
	}`, w.Body.String())
}
