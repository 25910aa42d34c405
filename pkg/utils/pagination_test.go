package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = GetPaginationParams(25, 50)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)

	p = GetPaginationParams(5000, 0)
	assert.Equal(t, 1000, p.Limit)
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(95, 10, 20)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 20, meta.Offset)
	assert.Equal(t, 95, meta.TotalCount)
	assert.Equal(t, 10, meta.TotalPages)

	meta = CalculateMeta(42, 0, 0)
	assert.Equal(t, 42, meta.Limit)
	assert.Equal(t, 1, meta.TotalPages)

	meta = CalculateMeta(0, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
