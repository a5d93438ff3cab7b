package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusreg/internal/pkg/apperrors"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), Offset(1, 10))
	assert.Equal(t, uint64(10), Offset(2, 10))
	assert.Equal(t, uint64(75), Offset(4, 25))
}

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/institutions?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", DefaultPage, DefaultPageSize},
		{"page=3&limit=20", 3, 20},
		{"page=2", 2, DefaultPageSize},
		{"limit=500", DefaultPage, MaxPageSize},
		{"page=0&limit=-1", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, limit, err := ParsePaginationParams(contextWithQuery(tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestParsePaginationParamsRejectsNonNumeric(t *testing.T) {
	for _, q := range []string{"page=abc", "limit=ten"} {
		_, _, err := ParsePaginationParams(contextWithQuery(q))
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest, q)
	}
}
