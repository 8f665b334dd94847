package pgdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vacation-shop/go-backend/internal/usecase"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bali", "bali"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{"%_", `\%\_`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLikePattern(tt.in), "input %q", tt.in)
	}
}

func TestBuildProductWhere(t *testing.T) {
	minPrice := int64(10050)
	maxPrice := int64(50000)

	tests := []struct {
		name      string
		filter    *usecase.ProductFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "default hides inactive",
			filter:    &usecase.ProductFilter{},
			wantWhere: " WHERE is_active = true",
			wantArgs:  []any{},
		},
		{
			name:      "admin sees everything",
			filter:    &usecase.ProductFilter{IncludeInactive: true},
			wantWhere: "",
			wantArgs:  []any{},
		},
		{
			name:      "categories and price range",
			filter:    &usecase.ProductFilter{IncludeInactive: true, CategoryIDs: []int64{1, 2}, MinPrice: &minPrice, MaxPrice: &maxPrice},
			wantWhere: " WHERE category_id = ANY($1) AND price >= $2 AND price <= $3",
			wantArgs:  []any{[]int64{1, 2}, minPrice, maxPrice},
		},
		{
			name:      "search wraps term in wildcards",
			filter:    &usecase.ProductFilter{IncludeInactive: true, Search: "bali"},
			wantWhere: " WHERE (name ILIKE $1 OR description ILIKE $1)",
			wantArgs:  []any{"%bali%"},
		},
		{
			name:      "search term wildcards are literal",
			filter:    &usecase.ProductFilter{IncludeInactive: true, Search: "100%_off"},
			wantWhere: " WHERE (name ILIKE $1 OR description ILIKE $1)",
			wantArgs:  []any{`%100\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildProductWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
