package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypost/internal/adapter/api"
	"waypost/internal/usecase"
)

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateServiceUnauthenticated(t *testing.T) {
	h := NewServiceHandler(usecase.NewServiceUseCase(nil, nil, nil, nil, nil))

	body := `{"title":"Deliver package","description":"Small box","reward":0.5,"deadline":1893456000}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/services", body)

	require.NoError(t, h.CreateService(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestCreateServiceValidation(t *testing.T) {
	h := NewServiceHandler(usecase.NewServiceUseCase(nil, nil, nil, nil, nil))

	t.Run("missing title", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/v1/services", `{"description":"x","reward":1,"deadline":1893456000}`)
		c.Set("uid", "creator")

		require.NoError(t, h.CreateService(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("latitude out of range", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/v1/services",
			`{"title":"x","description":"x","reward":1,"deadline":1893456000,"start_lat":95000000}`)
		c.Set("uid", "creator")

		require.NoError(t, h.CreateService(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/v1/services", `{"title":`)
		c.Set("uid", "creator")

		require.NoError(t, h.CreateService(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServiceIDParsing(t *testing.T) {
	h := NewServiceHandler(usecase.NewServiceUseCase(nil, nil, nil, nil, nil))

	for _, id := range []string{"abc", "-1", "0", ""} {
		c, rec := newTestContext(t, http.MethodGet, "/v1/services/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)

		require.NoError(t, h.GetService(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q must be rejected", id)
	}
}

func TestGetServiceEscrowUnauthenticated(t *testing.T) {
	h := NewServiceHandler(usecase.NewServiceUseCase(nil, nil, nil, nil, nil))

	c, rec := newTestContext(t, http.MethodGet, "/v1/services/1/escrow", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetServiceEscrow(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAcceptServiceUnauthenticated(t *testing.T) {
	h := NewServiceHandler(usecase.NewServiceUseCase(nil, nil, nil, nil, nil))

	c, rec := newTestContext(t, http.MethodPost, "/v1/services/1/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.AcceptService(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
