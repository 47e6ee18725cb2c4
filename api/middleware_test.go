package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthUseCase is a mock implementation of auth.AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*auth.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, emailAddr, password string) (*auth.Session, error) {
	args := m.Called(ctx, emailAddr, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) GoogleLogin(ctx context.Context, input auth.GoogleLoginInput) (*auth.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) ForgotPassword(ctx context.Context, emailAddr string) error {
	args := m.Called(ctx, emailAddr)
	return args.Error(0)
}

func (m *MockAuthUseCase) ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error {
	args := m.Called(ctx, emailAddr, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthUseCase) ParseToken(token string) (*auth.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

func (m *MockAuthUseCase) Authorize(p *auth.Principal, ownerID int64) error {
	args := m.Called(p, ownerID)
	return args.Error(0)
}

func (m *MockAuthUseCase) IsAdmin(p *auth.Principal) bool {
	args := m.Called(p)
	return args.Bool(0)
}

func TestAuthMiddleware_missingToken(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/users/1", nil)

	AuthMiddleware(mockAuth)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthMiddleware_invalidToken(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/users/1", nil)
	c.Request.Header.Set("Authorization", "Bearer garbage")

	mockAuth.On("ParseToken", "garbage").Return(nil, domain.ErrUnauthorized)

	AuthMiddleware(mockAuth)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())

	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_setsPrincipal(t *testing.T) {
	mockAuth := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/users/1", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	p := &auth.Principal{ID: 1, Email: "ana@example.com"}
	mockAuth.On("ParseToken", "good-token").Return(p, nil)

	AuthMiddleware(mockAuth)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, p, principal(c))

	mockAuth.AssertExpectations(t)
}
