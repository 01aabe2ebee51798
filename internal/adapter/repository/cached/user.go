package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"raw-user-service/internal/adapter/cache"
	domain "raw-user-service/internal/domain/user"
	"raw-user-service/internal/usecase/user"
)

// UserRepository implements user.Repository with a read cache for GetByID.
// Writes go straight to the wrapped repository and invalidate the entry.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewUserRepository creates a new caching decorator around dbRepo.
func NewUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Insert delegates to the DB repository. New rows cannot be cached because
// their id is not known here.
func (r *UserRepository) Insert(ctx context.Context, name, email string) error {
	return r.dbRepo.Insert(ctx, name, email)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *UserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	if cachedUser, err := r.cache.Get(ctx, id); err != nil {
		r.log.Warn("cache get error, falling back to database", zap.Int32("id", id), zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	// Cache miss: single-flight so concurrent misses hit the database once
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil || u == nil {
			return u, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int32("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	return u, nil
}

// GetAll delegates to the DB repository.
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.GetAll(ctx)
}

// Update updates the user in DB and invalidates the cache.
func (r *UserRepository) Update(ctx context.Context, id int32, name, email string) (int64, error) {
	affected, err := r.dbRepo.Update(ctx, id, name, email)
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx, id)
	return affected, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *UserRepository) Delete(ctx context.Context, id int32) (int64, error) {
	affected, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx, id)
	return affected, nil
}

func (r *UserRepository) invalidate(ctx context.Context, id int32) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.Int32("id", id), zap.Error(err))
	}
}
