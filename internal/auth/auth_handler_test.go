package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emp-portal/internal/auth"
	autherrors "emp-portal/internal/auth/errors"
	"emp-portal/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	LoginFn func(ctx context.Context, username, password string) (auth.LoginResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (auth.LoginResponse, error) {
	return f.LoginFn(ctx, username, password)
}

func postLogin(t *testing.T, h *auth.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, username, password string) (auth.LoginResponse, error) {
				assert.Equal(t, "admin", username)
				assert.Equal(t, "admin", password)
				return auth.LoginResponse{Success: true, Username: username, FullName: "Portal Admin"}, nil
			},
		}
		h := auth.NewHandler(svc)

		w := postLogin(t, h, `{"username":"admin","password":"admin"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"fullName":"Portal Admin"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})

		w := postLogin(t, h, `{"username":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields required")
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, username, password string) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h := auth.NewHandler(svc)

		w := postLogin(t, h, `{"username":"admin","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid login details")
	})

	t.Run("malformed body", func(t *testing.T) {
		h := auth.NewHandler(&fakeAuthService{})

		w := postLogin(t, h, `{not-json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
