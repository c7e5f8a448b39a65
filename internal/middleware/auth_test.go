package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maynagashev/blogapi/internal/middleware"
	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CredentialVerifier --- //

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Tests --- //

func TestGetUserFromContext(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice"}

	tests := []struct {
		name         string
		ctx          context.Context
		expectedUser *models.User
		expectedOK   bool
	}{
		{
			name:         "Контекст с пользователем",
			ctx:          context.WithValue(context.Background(), middleware.UserKey, user),
			expectedUser: user,
			expectedOK:   true,
		},
		{
			name:         "Пустой контекст",
			ctx:          context.Background(),
			expectedUser: nil,
			expectedOK:   false,
		},
		{
			name:         "Значение неверного типа",
			ctx:          context.WithValue(context.Background(), middleware.UserKey, "not-a-user"),
			expectedUser: nil,
			expectedOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := middleware.GetUserFromContext(tt.ctx)
			assert.Equal(t, tt.expectedUser, got)
			assert.Equal(t, tt.expectedOK, ok)
		})
	}
}

func TestBasicAuth(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice", FirstName: "Alice", LastName: "Zhu"}

	// Обработчик, который будет вызван после middleware
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := middleware.GetUserFromContext(r.Context())
		assert.True(t, ok, "Пользователь должен быть в контексте")
		require.NotNil(t, got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(fmt.Sprintf("OK for %s", got.Username)))
	})

	tests := []struct {
		name           string
		setAuth        func(req *http.Request)
		mockSetup      func(verifier *MockVerifier)
		expectedStatus int
	}{
		{
			name:    "Успешная аутентификация",
			setAuth: func(req *http.Request) { req.SetBasicAuth("alice", "secret123") },
			mockSetup: func(verifier *MockVerifier) {
				verifier.On("VerifyCredentials", mock.Anything, "alice", "secret123").
					Return(user, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Заголовок Authorization отсутствует",
			setAuth:        func(_ *http.Request) {},
			mockSetup:      func(_ *MockVerifier) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Не-Basic схема в заголовке",
			setAuth: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer some-token")
			},
			mockSetup:      func(_ *MockVerifier) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "Неизвестный пользователь",
			setAuth: func(req *http.Request) { req.SetBasicAuth("ghost", "secret123") },
			mockSetup: func(verifier *MockVerifier) {
				verifier.On("VerifyCredentials", mock.Anything, "ghost", "secret123").
					Return(nil, services.ErrInvalidCredentials).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "Неверный пароль",
			setAuth: func(req *http.Request) { req.SetBasicAuth("alice", "wrongpassword") },
			mockSetup: func(verifier *MockVerifier) {
				verifier.On("VerifyCredentials", mock.Anything, "alice", "wrongpassword").
					Return(nil, services.ErrInvalidCredentials).Once()
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "Сбой хранилища при проверке — 500, а не 401",
			setAuth: func(req *http.Request) { req.SetBasicAuth("alice", "secret123") },
			mockSetup: func(verifier *MockVerifier) {
				verifier.On("VerifyCredentials", mock.Anything, "alice", "secret123").
					Return(nil, errors.New("ошибка поиска пользователя при проверке учетных данных: db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(MockVerifier)
			tt.mockSetup(verifier)

			handler := middleware.BasicAuth(verifier)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setAuth(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			switch tt.expectedStatus {
			case http.StatusUnauthorized:
				// Ответ 401 всегда одинаковый и содержит WWW-Authenticate
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
				assert.Contains(t, rr.Body.String(), "Требуется аутентификация")
			case http.StatusInternalServerError:
				// Сбой сервера не притворяется отказом в доступе
				assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
				assert.Contains(t, rr.Body.String(), "Внутренняя ошибка сервера")
			}
			verifier.AssertExpectations(t)
		})
	}
}
