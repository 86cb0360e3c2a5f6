package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	mockauthservice "github.com/mirellenails/salon-backend/internal/auth/handler/mocks"
	jwtauth "github.com/mirellenails/salon-backend/internal/auth/jwt"
	"github.com/mirellenails/salon-backend/internal/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func passthroughMiddleware(next http.Handler) http.Handler {
	return next
}

func adminContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), jwtauth.EmailContextKey{}, "admin@salon.com")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(t *testing.T, authMiddleware func(http.Handler) http.Handler) (*chi.Mux, *mockauthservice.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockService := mockauthservice.NewMockService(ctrl)

	router := chi.NewRouter()
	New(mockService, authMiddleware, passthroughMiddleware, time.Hour, zap.NewNop()).Register(router)

	return router, mockService
}

func TestLoginHandler(t *testing.T) {
	type mockBehavior func(s *mockauthservice.MockService)

	tests := []struct {
		name               string
		inputBody          string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectCookie       bool
	}{
		{
			name:      "OK",
			inputBody: `{"email":"admin@salon.com","password":"secret"}`,
			mockBehavior: func(s *mockauthservice.MockService) {
				s.EXPECT().Login(gomock.Any(), "admin@salon.com", "secret").Return("token", nil)
			},
			expectedStatusCode: 200,
			expectCookie:       true,
		},
		{
			name:      "invalid credentials",
			inputBody: `{"email":"admin@salon.com","password":"guess"}`,
			mockBehavior: func(s *mockauthservice.MockService) {
				s.EXPECT().Login(gomock.Any(), "admin@salon.com", "guess").Return("", service.ErrInvalidCredentials)
			},
			expectedStatusCode: 400,
		},
		{
			name:               "missing password",
			inputBody:          `{"email":"admin@salon.com"}`,
			mockBehavior:       func(s *mockauthservice.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "not an email",
			inputBody:          `{"email":"admin","password":"secret"}`,
			mockBehavior:       func(s *mockauthservice.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "malformed body",
			inputBody:          `{"email":`,
			mockBehavior:       func(s *mockauthservice.MockService) {},
			expectedStatusCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newTestRouter(t, passthroughMiddleware)
			tt.mockBehavior(mockService)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.inputBody))

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatusCode, w.Code)

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, jwtauth.SessionCookieName, cookies[0].Name)
				assert.Equal(t, "token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
				assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)
			} else {
				assert.Empty(t, w.Result().Cookies())
			}
		})
	}
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	router, _ := newTestRouter(t, passthroughMiddleware)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)

	router.ServeHTTP(w, r)

	assert.Equal(t, 200, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, jwtauth.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestWhoamiHandler(t *testing.T) {
	router, _ := newTestRouter(t, adminContextMiddleware)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	router.ServeHTTP(w, r)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"email":"admin@salon.com"}`, w.Body.String())
}

func TestWhoamiHandlerWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t, passthroughMiddleware)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	router.ServeHTTP(w, r)

	assert.Equal(t, 401, w.Code)
}
