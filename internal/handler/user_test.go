package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/handler"
	"github.com/dangerclosesec/accountd/internal/middleware"
	"github.com/dangerclosesec/accountd/internal/mocks"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userFixture struct {
	userRepo     *mocks.MockUserRepositoryIface
	tokenManager *auth.TokenManager
	router       chi.Router
}

func newUserFixture(t *testing.T, ctrl *gomock.Controller) *userFixture {
	t.Helper()

	f := &userFixture{
		userRepo:     mocks.NewMockUserRepositoryIface(ctrl),
		tokenManager: auth.NewTokenManager(testSecret, time.Hour, 15*time.Minute),
	}

	userHandler := handler.NewUserHandler(service.NewUserService(f.userRepo))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(f.tokenManager))
		r.Get("/api/users/profile", userHandler.GetProfileHandler)
		r.Put("/api/users/profile", userHandler.UpdateProfileHandler)
	})
	f.router = r

	return f
}

func (f *userFixture) request(t *testing.T, method, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, "/api/users/profile", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGetProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("returns the profile", func(t *testing.T) {
		f := newUserFixture(t, ctrl)
		token, err := f.tokenManager.IssueBase(userID.String(), "test@example.com", nil)
		require.NoError(t, err)

		f.userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{
				ID:        userID,
				Email:     "test@example.com",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Phone:     "555-0100",
			}, nil)

		rec := f.request(t, http.MethodGet, token, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Ada", body.FirstName)
		assert.Equal(t, "555-0100", body.Phone)
	})

	t.Run("no credential", func(t *testing.T) {
		f := newUserFixture(t, ctrl)

		rec := f.request(t, http.MethodGet, "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("updates the profile", func(t *testing.T) {
		f := newUserFixture(t, ctrl)
		token, err := f.tokenManager.IssueBase(userID.String(), "test@example.com", nil)
		require.NoError(t, err)

		f.userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "test@example.com"}, nil)
		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		rec := f.request(t, http.MethodPut, token, map[string]string{
			"first_name": "Ada",
			"phone":      "555-0100",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		var body model.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Ada", body.FirstName)
		assert.Equal(t, "555-0100", body.Phone)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		f := newUserFixture(t, ctrl)
		token, err := f.tokenManager.IssueBase(userID.String(), "test@example.com", nil)
		require.NoError(t, err)

		rec := f.request(t, http.MethodPut, token, map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newUserFixture(t, ctrl)
		token, err := f.tokenManager.IssueBase(userID.String(), "test@example.com", nil)
		require.NoError(t, err)

		f.userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "test@example.com"}, nil)
		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(domain.ErrEmailAlreadyExists)

		rec := f.request(t, http.MethodPut, token, map[string]string{
			"first_name": "Ada",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
