package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/auth"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockUserLoader struct{ mock.Mock }

func (m *MockUserLoader) GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func okHandler(sawUser **entity.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := UserFromContext(r.Context()); ok {
			*sawUser = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	tokens := auth.NewTokenManager("test-secret")

	user := &entity.User{ID: primitive.NewObjectID(), Email: "ayesha@example.com", Role: entity.RoleUser}

	t.Run("NoToken", func(t *testing.T) {
		loader := new(MockUserLoader)
		var saw *entity.User
		handler := JWTAuth(tokens, loader, logger)(okHandler(&saw))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/all", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
		assert.Nil(t, saw)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		loader := new(MockUserLoader)
		var saw *entity.User
		handler := JWTAuth(tokens, loader, logger)(okHandler(&saw))

		req := httptest.NewRequest(http.MethodGet, "/category/all", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("ValidToken_LoadsUser", func(t *testing.T) {
		loader := new(MockUserLoader)
		loader.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
		var saw *entity.User
		handler := JWTAuth(tokens, loader, logger)(okHandler(&saw))

		token, err := tokens.Generate(user.ID.Hex(), user.Role, time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/category/all", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user, saw)
		loader.AssertExpectations(t)
	})

	t.Run("UserDeletedAfterTokenIssued", func(t *testing.T) {
		loader := new(MockUserLoader)
		loader.On("GetByID", mock.Anything, user.ID).Return(nil, repository.ErrUserNotFound).Once()
		var saw *entity.User
		handler := JWTAuth(tokens, loader, logger)(okHandler(&saw))

		token, _ := tokens.Generate(user.ID.Hex(), user.Role, time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/category/all", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		expiredTokens := auth.NewTokenManagerWithClock("test-secret", func() time.Time { return issued })
		token, _ := expiredTokens.Generate(user.ID.Hex(), user.Role, time.Hour)

		loader := new(MockUserLoader)
		var saw *entity.User
		handler := JWTAuth(tokens, loader, logger)(okHandler(&saw))

		req := httptest.NewRequest(http.MethodGet, "/category/all", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("AdminPasses", func(t *testing.T) {
		admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}
		req := httptest.NewRequest(http.MethodPost, "/category/create", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserCtxKey, admin))
		rec := httptest.NewRecorder()
		AdminOnly(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		customer := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleUser}
		req := httptest.NewRequest(http.MethodPost, "/category/create", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserCtxKey, customer))
		rec := httptest.NewRecorder()
		AdminOnly(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"message":"Access denied. Admin only."}`, rec.Body.String())
	})

	t.Run("NoUserInContext", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOnly(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/category/create", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
