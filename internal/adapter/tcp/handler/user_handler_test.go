package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "raw-user-service/internal/domain/user"
	usecase "raw-user-service/internal/usecase/user"
	apperrors "raw-user-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, req usecase.GetUserRequest) (*usecase.GetUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, req usecase.UpdateUserRequest) (*usecase.UpdateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UpdateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) (*usecase.DeleteUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeleteUserResponse), args.Error(1)
}

func setupTestHandler(t *testing.T) (*UserHandler, *MockUserUsecase) {
	uc := new(MockUserUsecase)
	return NewUserHandler(uc, zaptest.NewLogger(t)), uc
}

var errDB = apperrors.NewDatabaseError("failed", errors.New("connection reset"))

func TestResponse_Bytes(t *testing.T) {
	assert.Equal(t,
		"HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\nUser created",
		string(Response{Status: StatusOK, Body: BodyUserCreated}.Bytes()))
	assert.Equal(t,
		"HTTP/1.1 404 NOT FOUND\r\n\r\n404 Not Found",
		string(Response{Status: StatusNotFound, Body: BodyNotFound}.Bytes()))
	assert.Equal(t,
		"HTTP/1.1 500 INTERNAL ERROR\r\n\r\nInvalid JSON",
		string(Response{Status: StatusInternalError, Body: BodyInvalidJSON}.Bytes()))
	assert.Equal(t,
		"HTTP/1.1 429 TOO MANY REQUESTS\r\n\r\nRate limit exceeded",
		string(RateLimited().Bytes()))
}

// ==================== CREATE USER TESTS ====================

func TestDispatch_CreateUser(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		mockSetup func(m *MockUserUsecase)
		expected  Response
	}{
		{
			name: "success",
			raw:  "POST /users HTTP/1.1\r\nContent-Type: application/json\r\n\r\n{\"name\":\"Ann\",\"email\":\"a@x.com\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "Ann", Email: "a@x.com"}).Return(nil)
			},
			expected: Response{Status: StatusOK, Body: BodyUserCreated},
		},
		{
			name: "payload id ignored",
			raw:  "POST /users HTTP/1.1\r\n\r\n{\"id\":9,\"name\":\"Ann\",\"email\":\"a@x.com\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "Ann", Email: "a@x.com"}).Return(nil)
			},
			expected: Response{Status: StatusOK, Body: BodyUserCreated},
		},
		{
			name:     "missing email",
			raw:      "POST /users HTTP/1.1\r\n\r\n{\"name\":\"Ann\"}",
			expected: Response{Status: StatusInternalError, Body: BodyInvalidJSON},
		},
		{
			name:     "no blank line",
			raw:      "POST /users HTTP/1.1\r\n{\"name\":\"Ann\",\"email\":\"a@x.com\"}",
			expected: Response{Status: StatusInternalError, Body: BodyInvalidJSON},
		},
		{
			name: "store failure",
			raw:  "POST /users HTTP/1.1\r\n\r\n{\"name\":\"Ann\",\"email\":\"a@x.com\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("CreateUser", mock.Anything, mock.Anything).Return(errDB)
			},
			expected: Response{Status: StatusInternalError, Body: BodyInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupTestHandler(t)
			if tt.mockSetup != nil {
				tt.mockSetup(uc)
			}

			resp := h.Dispatch(context.Background(), tt.raw)

			assert.Equal(t, tt.expected, resp)
			uc.AssertExpectations(t)
		})
	}
}

// ==================== GET USER TESTS ====================

func TestDispatch_GetUser(t *testing.T) {
	ann := domain.User{ID: domain.NewID(1), Name: "Ann", Email: "a@x.com"}

	tests := []struct {
		name      string
		raw       string
		mockSetup func(m *MockUserUsecase)
		expected  Response
	}{
		{
			name: "found",
			raw:  "GET /users/1 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 1}).Return(&usecase.GetUserResponse{User: ann}, nil)
			},
			expected: Response{Status: StatusOK, Body: `{"id":1,"name":"Ann","email":"a@x.com"}`},
		},
		{
			name: "absent",
			raw:  "GET /users/999 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 999}).Return(nil, apperrors.ErrNotFound)
			},
			expected: Response{Status: StatusNotFound, Body: BodyUserNotFound},
		},
		{
			name:     "non numeric id",
			raw:      "GET /users/abc HTTP/1.1\r\n\r\n",
			expected: Response{Status: StatusNotFound, Body: BodyInvalidID},
		},
		{
			name:     "empty id",
			raw:      "GET /users/",
			expected: Response{Status: StatusNotFound, Body: BodyInvalidID},
		},
		{
			name:     "id out of range",
			raw:      "GET /users/2147483648 HTTP/1.1\r\n\r\n",
			expected: Response{Status: StatusNotFound, Body: BodyInvalidID},
		},
		{
			name: "store failure",
			raw:  "GET /users/1 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("GetUser", mock.Anything, mock.Anything).Return(nil, errDB)
			},
			expected: Response{Status: StatusInternalError, Body: BodyInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupTestHandler(t)
			if tt.mockSetup != nil {
				tt.mockSetup(uc)
			}

			resp := h.Dispatch(context.Background(), tt.raw)

			assert.Equal(t, tt.expected, resp)
			uc.AssertExpectations(t)
			if tt.mockSetup == nil {
				uc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
			}
		})
	}
}

// ==================== LIST USERS TESTS ====================

func TestDispatch_ListUsers(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(m *MockUserUsecase)
		expected  Response
	}{
		{
			name: "empty",
			mockSetup: func(m *MockUserUsecase) {
				m.On("ListUsers", mock.Anything).Return(&usecase.ListUsersResponse{Users: []domain.User{}}, nil)
			},
			expected: Response{Status: StatusOK, Body: `[]`},
		},
		{
			name: "two users",
			mockSetup: func(m *MockUserUsecase) {
				m.On("ListUsers", mock.Anything).Return(&usecase.ListUsersResponse{Users: []domain.User{
					{ID: domain.NewID(1), Name: "Ann", Email: "a@x.com"},
					{ID: domain.NewID(2), Name: "Bob", Email: "b@x.com"},
				}}, nil)
			},
			expected: Response{
				Status: StatusOK,
				Body:   `[{"id":1,"name":"Ann","email":"a@x.com"},{"id":2,"name":"Bob","email":"b@x.com"}]`,
			},
		},
		{
			name: "connection failure",
			mockSetup: func(m *MockUserUsecase) {
				m.On("ListUsers", mock.Anything).Return(nil, errDB)
			},
			expected: Response{Status: StatusInternalError, Body: BodyInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupTestHandler(t)
			tt.mockSetup(uc)

			resp := h.Dispatch(context.Background(), "GET /users HTTP/1.1\r\n\r\n")

			assert.Equal(t, tt.expected, resp)
			uc.AssertExpectations(t)
		})
	}
}

// ==================== UPDATE USER TESTS ====================

func TestDispatch_UpdateUser(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		mockSetup func(m *MockUserUsecase)
		expected  Response
	}{
		{
			name: "success",
			raw:  "PUT /users/1 HTTP/1.1\r\n\r\n{\"name\":\"Ann2\",\"email\":\"a2@x.com\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("UpdateUser", mock.Anything, usecase.UpdateUserRequest{ID: 1, Name: "Ann2", Email: "a2@x.com"}).
					Return(&usecase.UpdateUserResponse{RowsAffected: 1}, nil)
			},
			expected: Response{Status: StatusOK, Body: BodyUserUpdated},
		},
		{
			name: "path id wins over payload id",
			raw:  "PUT /users/3 HTTP/1.1\r\n\r\n{\"id\":8,\"name\":\"A\",\"email\":\"e\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("UpdateUser", mock.Anything, usecase.UpdateUserRequest{ID: 3, Name: "A", Email: "e"}).
					Return(&usecase.UpdateUserResponse{RowsAffected: 1}, nil)
			},
			expected: Response{Status: StatusOK, Body: BodyUserUpdated},
		},
		{
			name: "absent",
			raw:  "PUT /users/999 HTTP/1.1\r\n\r\n{\"name\":\"A\",\"email\":\"e\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
			},
			expected: Response{Status: StatusNotFound, Body: BodyUserNotFound},
		},
		{
			name:     "invalid id checked before body",
			raw:      "PUT /users/x HTTP/1.1\r\n\r\nnot json",
			expected: Response{Status: StatusNotFound, Body: BodyInvalidID},
		},
		{
			name:     "invalid body",
			raw:      "PUT /users/1 HTTP/1.1\r\n\r\n{\"name\":\"A\"}",
			expected: Response{Status: StatusInternalError, Body: BodyInvalidJSON},
		},
		{
			name: "store failure",
			raw:  "PUT /users/1 HTTP/1.1\r\n\r\n{\"name\":\"A\",\"email\":\"e\"}",
			mockSetup: func(m *MockUserUsecase) {
				m.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, errDB)
			},
			expected: Response{Status: StatusInternalError, Body: BodyInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupTestHandler(t)
			if tt.mockSetup != nil {
				tt.mockSetup(uc)
			}

			resp := h.Dispatch(context.Background(), tt.raw)

			assert.Equal(t, tt.expected, resp)
			uc.AssertExpectations(t)
		})
	}
}

// ==================== DELETE USER TESTS ====================

func TestDispatch_DeleteUser(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		mockSetup func(m *MockUserUsecase)
		expected  Response
	}{
		{
			name: "success",
			raw:  "DELETE /users/1 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 1}).
					Return(&usecase.DeleteUserResponse{RowsAffected: 1}, nil)
			},
			expected: Response{Status: StatusOK, Body: BodyUserDeleted},
		},
		{
			name: "absent",
			raw:  "DELETE /users/1 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("DeleteUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
			},
			expected: Response{Status: StatusNotFound, Body: BodyUserNotFound},
		},
		{
			name:     "invalid id",
			raw:      "DELETE /users/-x HTTP/1.1\r\n\r\n",
			expected: Response{Status: StatusNotFound, Body: BodyInvalidID},
		},
		{
			name: "store failure",
			raw:  "DELETE /users/1 HTTP/1.1\r\n\r\n",
			mockSetup: func(m *MockUserUsecase) {
				m.On("DeleteUser", mock.Anything, mock.Anything).Return(nil, errDB)
			},
			expected: Response{Status: StatusInternalError, Body: BodyInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupTestHandler(t)
			if tt.mockSetup != nil {
				tt.mockSetup(uc)
			}

			resp := h.Dispatch(context.Background(), tt.raw)

			assert.Equal(t, tt.expected, resp)
			uc.AssertExpectations(t)
		})
	}
}

// ==================== NOT FOUND TESTS ====================

func TestDispatch_NotFound(t *testing.T) {
	for _, raw := range []string{
		"PATCH /users/1 HTTP/1.1\r\n\r\n",
		"GET /items HTTP/1.1\r\n\r\n",
		"DELETE /users HTTP/1.1\r\n\r\n",
		"hello",
		"��",
	} {
		t.Run(raw, func(t *testing.T) {
			h, uc := setupTestHandler(t)

			resp := h.Dispatch(context.Background(), raw)

			assert.Equal(t, Response{Status: StatusNotFound, Body: BodyNotFound}, resp)
			uc.AssertExpectations(t)
		})
	}
}
