package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muskan-fatima97/ClassyShop/internal/handler"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/auth"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	logger, _ := zap.NewDevelopment()
	h := Handlers{
		Auth:     handler.NewAuthHandler(nil, logger),
		Category: handler.NewCategoryHandler(nil, logger),
		Brand:    handler.NewBrandHandler(nil, logger),
		Product:  handler.NewProductHandler(nil, logger),
		Order:    handler.NewOrderHandler(nil, logger),
		User:     handler.NewUserHandler(nil, logger),
	}
	return New(h, Deps{
		Tokens: auth.NewTokenManager("test-secret"),
		Users:  nil,
		Logger: logger,
	})
}

func TestRouter_NotFoundCatchAll(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"API endpoint not found"}`, rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/category/all"},
		{http.MethodGet, "/brand/all"},
		{http.MethodGet, "/product/search"},
		{http.MethodGet, "/user/all"},
		{http.MethodPost, "/order/create"},
		{http.MethodPost, "/category/create"},
	}

	for _, route := range protected {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "expected 401 for %s %s", route.method, route.path)
		assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
	}
}
