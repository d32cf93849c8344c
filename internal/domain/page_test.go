package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travelbook/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
	}{
		{"defaults", nil, nil, domain.PaginationParams{Page: 1, Limit: 20}},
		{"explicit", intPtr(3), intPtr(5), domain.PaginationParams{Page: 3, Limit: 5}},
		{"non-positive falls back", intPtr(0), intPtr(-2), domain.PaginationParams{Page: 1, Limit: 20}},
		{"limit capped", nil, intPtr(500), domain.PaginationParams{Page: 1, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NewPaginationParams(tt.page, tt.limit))
		})
	}
}

func TestPaginationParams_Bounds(t *testing.T) {
	p := domain.PaginationParams{Page: 2, Limit: 2}

	start, end := p.Bounds(5)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = p.Bounds(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	start, end = domain.PaginationParams{Page: 9, Limit: 2}.Bounds(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}
