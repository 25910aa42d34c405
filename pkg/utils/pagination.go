package utils

import "math"

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// GetPaginationParams clamps limit and offset to sane values.
// Default limit is 100, ceiling 1000.
func GetPaginationParams(limit, offset int) PaginationParams {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount, limit, offset int) PaginationMeta {
	if limit <= 0 {
		return PaginationMeta{
			Limit:      totalCount,
			TotalCount: totalCount,
			TotalPages: 1,
		}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	if totalPages < 0 {
		totalPages = 0
	}

	return PaginationMeta{
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
