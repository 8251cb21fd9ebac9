package user

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResponse), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, userID int) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockService) SetPushID(ctx context.Context, userID int, pushID string) error {
	args := m.Called(ctx, userID, pushID)
	return args.Error(0)
}

func serveJSON(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 7)
		c.Next()
	})
	r.Handle(method, "/", h)

	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Register(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc)
	req := RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "password123"}
	svc.On("Register", mock.Anything, req).Return(nil, ErrEmailExists)

	w := serveJSON(h.Register, http.MethodPost, `{"name":"Kim","email":"kim@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serveJSON(h.Register, http.MethodPost, `{"name":"Kim","email":"not-an-email","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, ErrInvalidCredentials)

	w := serveJSON(NewHandler(svc).Login, http.MethodPost, `{"email":"kim@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_GetMe(t *testing.T) {
	svc := new(MockService)
	svc.On("GetByID", mock.Anything, 7).Return(&User{ID: 7, Name: "Kim", PasswordHash: "secret-hash"}, nil)

	w := serveJSON(NewHandler(svc).GetMe, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestHandler_SetPushID(t *testing.T) {
	svc := new(MockService)
	svc.On("SetPushID", mock.Anything, 7, "player-1").Return(nil)

	w := serveJSON(NewHandler(svc).SetPushID, http.MethodPut, `{"push_id":"player-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
