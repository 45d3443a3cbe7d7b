package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Clamps(t *testing.T) {
	p := ListParams{Page: -1, PerPage: 0, OrderBy: "sideways"}
	p.Validate()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)

	p = ListParams{Page: 3, PerPage: 500, OrderBy: "ASC"}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 1, PerPage: 20}
	assert.Equal(t, 0, p.CalculateOffset())

	p.Page = 4
	assert.Equal(t, 60, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
	assert.Equal(t, 1, CalculateTotalPages(10, 20))
	assert.Equal(t, 2, CalculateTotalPages(40, 20))
	assert.Equal(t, 3, CalculateTotalPages(41, 20))
}

func TestDefaultListParams(t *testing.T) {
	p := DefaultListParams("created_at")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
}
