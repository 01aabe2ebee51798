package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"raw-user-service/internal/adapter/tcp/request"
	"raw-user-service/internal/adapter/tcp/router"
	domain "raw-user-service/internal/domain/user"
	"raw-user-service/internal/usecase/user"
	apperrors "raw-user-service/pkg/errors"
	"raw-user-service/pkg/logger"
)

// UserHandler turns a raw request into a response
type UserHandler struct {
	uc     user.Usecase
	router *router.Router
	log    *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		router: router.NewUserRouter(),
		log:    log,
	}
}

// Dispatch routes the request and runs the matching handler. It always
// returns a response; failures are mapped to status blocks.
func (h *UserHandler) Dispatch(ctx context.Context, raw string) Response {
	kind := h.router.Match(raw)
	logger.WithContext(ctx, h.log).Debug("dispatching request", zap.Stringer("route", kind))

	switch kind {
	case router.KindCreate:
		return h.CreateUser(ctx, raw)
	case router.KindGet:
		return h.GetUser(ctx, raw)
	case router.KindList:
		return h.ListUsers(ctx)
	case router.KindUpdate:
		return h.UpdateUser(ctx, raw)
	case router.KindDelete:
		return h.DeleteUser(ctx, raw)
	default:
		return notFound(BodyNotFound)
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(ctx context.Context, raw string) Response {
	log := logger.WithContext(ctx, h.log)

	u, err := domain.Decode([]byte(request.ExtractBody(raw)))
	if err != nil {
		log.Warn("invalid create user payload", zap.Error(err))
		return internalError(BodyInvalidJSON)
	}

	if err := h.uc.CreateUser(ctx, user.CreateUserRequest{Name: u.Name, Email: u.Email}); err != nil {
		return internalError(BodyInternal)
	}
	return ok(BodyUserCreated)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(ctx context.Context, raw string) Response {
	id, err := request.ParseID(request.ExtractID(raw))
	if err != nil {
		logger.WithContext(ctx, h.log).Warn("invalid user id", zap.Error(err))
		return notFound(BodyInvalidID)
	}

	resp, err := h.uc.GetUser(ctx, user.GetUserRequest{ID: id})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFound(BodyUserNotFound)
		}
		return internalError(BodyInternal)
	}

	data, err := domain.Encode(resp.User)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("failed to encode user", zap.Error(err))
		return internalError(BodyInternal)
	}
	return ok(string(data))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(ctx context.Context) Response {
	resp, err := h.uc.ListUsers(ctx)
	if err != nil {
		return internalError(BodyInternal)
	}

	data, err := domain.EncodeList(resp.Users)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("failed to encode users", zap.Error(err))
		return internalError(BodyInternal)
	}
	return ok(string(data))
}

// UpdateUser handles PUT /users/{id}. The id is validated before the body.
func (h *UserHandler) UpdateUser(ctx context.Context, raw string) Response {
	log := logger.WithContext(ctx, h.log)

	id, err := request.ParseID(request.ExtractID(raw))
	if err != nil {
		log.Warn("invalid user id", zap.Error(err))
		return notFound(BodyInvalidID)
	}

	u, err := domain.Decode([]byte(request.ExtractBody(raw)))
	if err != nil {
		log.Warn("invalid update user payload", zap.Error(err))
		return internalError(BodyInvalidJSON)
	}

	// The path id wins over any id in the payload
	_, err = h.uc.UpdateUser(ctx, user.UpdateUserRequest{ID: id, Name: u.Name, Email: u.Email})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFound(BodyUserNotFound)
		}
		return internalError(BodyInternal)
	}
	return ok(BodyUserUpdated)
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(ctx context.Context, raw string) Response {
	id, err := request.ParseID(request.ExtractID(raw))
	if err != nil {
		logger.WithContext(ctx, h.log).Warn("invalid user id", zap.Error(err))
		return notFound(BodyInvalidID)
	}

	_, err = h.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: id})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFound(BodyUserNotFound)
		}
		return internalError(BodyInternal)
	}
	return ok(BodyUserDeleted)
}
