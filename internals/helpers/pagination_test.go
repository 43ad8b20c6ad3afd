package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	p := Paging{Page: 2, PerPage: 20, Offset: 20, Limit: 20}
	out := BuildPagination(45, p)

	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 20, out.PerPage)
	assert.Equal(t, int64(45), out.Total)
	assert.Equal(t, 3, out.TotalPages)
	assert.True(t, out.HasNext)
	assert.True(t, out.HasPrev)

	last := BuildPagination(45, Paging{Page: 3, PerPage: 20})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := BuildPagination(0, Paging{Page: 1, PerPage: 20})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
