package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/services?"+query, nil)
	return GetPaginationParams(e.NewContext(req, httptest.NewRecorder()))
}

func TestGetPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsFor(t, "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		p := paramsFor(t, "page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.PageSize)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("oversized limit clamps to default", func(t *testing.T) {
		p := paramsFor(t, "limit=500")
		assert.Equal(t, 20, p.PageSize)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		p := paramsFor(t, "page=abc&limit=-5")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
	})
}
