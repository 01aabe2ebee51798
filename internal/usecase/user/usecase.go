package user

import (
	"context"

	"go.uber.org/zap"

	domain "raw-user-service/internal/domain/user"
	apperrors "raw-user-service/pkg/errors"
	"raw-user-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Each method maps to a single statement against the users table.
type Repository interface {
	Insert(ctx context.Context, name, email string) error                   // Append a row
	GetByID(ctx context.Context, id int32) (*domain.User, error)            // nil when absent
	GetAll(ctx context.Context) ([]domain.User, error)                      // Every row, storage order
	Update(ctx context.Context, id int32, name, email string) (int64, error) // Rows affected
	Delete(ctx context.Context, id int32) (int64, error)                    // Rows affected
}

// Service implements the business logic for user management operations.
// It translates row counts and absences into typed errors for the transport.
type Service struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// CreateUser stores a new user. The assigned id is not reported.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) error {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.repo.Insert(ctx, in.Name, in.Email); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	log := logger.WithContext(ctx, s.log)

	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		log.Error("failed to get user", zap.Int32("id", in.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		log.Info("user not found", zap.Int32("id", in.ID))
		return nil, apperrors.ErrNotFound
	}

	return &GetUserResponse{User: *u}, nil
}

// ListUsers retrieves every user.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, s.log)

	users, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	log.Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

// UpdateUser overwrites name and email; zero affected rows means not found.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("updating user", zap.Int32("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	affected, err := s.repo.Update(ctx, in.ID, in.Name, in.Email)
	if err != nil {
		log.Error("failed to update user", zap.Int32("id", in.ID), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		log.Info("update matched no user", zap.Int32("id", in.ID))
		return nil, apperrors.ErrNotFound
	}

	return &UpdateUserResponse{RowsAffected: affected}, nil
}

// DeleteUser removes a user; zero affected rows means not found.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("deleting user", zap.Int32("id", in.ID))

	affected, err := s.repo.Delete(ctx, in.ID)
	if err != nil {
		log.Error("failed to delete user", zap.Int32("id", in.ID), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		log.Info("delete matched no user", zap.Int32("id", in.ID))
		return nil, apperrors.ErrNotFound
	}

	return &DeleteUserResponse{RowsAffected: affected}, nil
}
