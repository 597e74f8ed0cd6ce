package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page defaults", 0, 10, 0, 10},
		{"zero size defaults", 1, 0, 0, DefaultPageSize},
		{"oversized page size capped", 1, MaxPageSize + 1, 0, DefaultPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			if offset != tc.wantOffset || limit != tc.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", offset, limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	if info.TotalPages != 5 {
		t.Errorf("total pages = %d, want 5", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Errorf("current page = %d, want 2", info.CurrentPage)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Errorf("empty list total pages = %d, want 1", empty.TotalPages)
	}

	// Requesting past the end clamps to the last page.
	past := NewPaginationInfo(15, 9, 10)
	if past.CurrentPage != 2 {
		t.Errorf("clamped current page = %d, want 2", past.CurrentPage)
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&pageSize=25", 3, 25},
		{"garbage falls back", "?page=abc&pageSize=-1", 1, 10},
		{"oversize falls back", "?pageSize=1000", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tc.query, nil)
			page, size := ParsePaginationParams(c)
			if page != tc.wantPage || size != tc.wantSize {
				t.Errorf("got (%d, %d), want (%d, %d)", page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}
