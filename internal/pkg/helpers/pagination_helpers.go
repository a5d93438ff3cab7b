package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusreg/internal/app/models/dto"
	"github.com/yigit/campusreg/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// Offset converts a 1-based page and a page size into a row offset.
// Callers validate that both are positive.
func Offset(page, limit int) uint64 {
	return uint64(page-1) * uint64(limit)
}

// ParsePaginationParams extracts page and limit from the query string.
// Missing values fall back to defaults, limits above MaxPageSize are clamped,
// and non-numeric values are rejected. Range checks belong to the directory.
func ParsePaginationParams(c *gin.Context) (page, limit int, err error) {
	page, err = queryInt(c, "page", DefaultPage)
	if err != nil {
		return 0, 0, err
	}

	limit, err = queryInt(c, "limit", DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return page, limit, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidRequestError(key + " must be an integer")
	}
	return n, nil
}

// NewPaginationInfo creates a standard PaginationInfo DTO for a returned page.
func NewPaginationInfo(page, limit, count int) *dto.PaginationInfo {
	return &dto.PaginationInfo{
		Page:  page,
		Limit: limit,
		Count: count,
	}
}
