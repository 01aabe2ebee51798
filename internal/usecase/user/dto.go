package user

import domain "raw-user-service/internal/domain/user"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string
	Email string
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int32
}

// GetUserResponse carries the stored user.
type GetUserResponse struct {
	User domain.User
}

// ListUsersResponse carries every stored user in storage order.
type ListUsersResponse struct {
	Users []domain.User
}

// UpdateUserRequest overwrites both name and email of an existing user.
type UpdateUserRequest struct {
	ID    int32
	Name  string
	Email string
}

// UpdateUserResponse represents the outcome of an update.
type UpdateUserResponse struct {
	RowsAffected int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int32
}

// DeleteUserResponse represents the outcome of a delete.
type DeleteUserResponse struct {
	RowsAffected int64
}
