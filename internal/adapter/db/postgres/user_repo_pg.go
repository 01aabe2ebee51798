package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raw-user-service/internal/domain/user"
	apperrors "raw-user-service/pkg/errors"
)

// UserRepoPG is the persistence gateway for the users table. Every method
// runs exactly one statement on a handle obtained from the connector.
type UserRepoPG struct {
	conn Connector   // Source of database handles (pooled or per call)
	log  *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(conn Connector, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{conn: conn, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int32  `gorm:"primaryKey;autoIncrement"` // SERIAL primary key
	Name  string `gorm:"type:varchar;not null"`
	Email string `gorm:"type:varchar;not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:    user.NewID(m.ID),
		Name:  m.Name,
		Email: m.Email,
	}
}

func (r *UserRepoPG) acquire(ctx context.Context) (*gorm.DB, func(), error) {
	db, release, err := r.conn.Acquire(ctx)
	if err != nil {
		r.log.Error("failed to acquire database connection", zap.Error(err))
		return nil, nil, apperrors.NewDatabaseError("failed to connect to database", err)
	}
	return db, release, nil
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *UserRepoPG) EnsureSchema(ctx context.Context) error {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		r.log.Error("failed to ensure users table", zap.Error(err))
		return apperrors.NewDatabaseError("failed to ensure schema", err)
	}

	r.log.Info("users table ready")
	return nil
}

// Insert appends a new row. The generated id is not reported back.
func (r *UserRepoPG) Insert(ctx context.Context, name, email string) error {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	model := UserSchema{
		Name:  name,
		Email: email,
	}

	if err := db.Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", email))
		return apperrors.NewDatabaseError("failed to create user", err)
	}

	r.log.Info("user created in db", zap.Int32("id", model.ID))
	return nil
}

// GetByID returns the matching user, or nil without error when there is none.
func (r *UserRepoPG) GetByID(ctx context.Context, id int32) (*user.User, error) {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var model UserSchema
	if err := db.Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int32("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int32("id", id))
		return nil, apperrors.NewDatabaseError("failed to get user", err)
	}

	u := model.toDomain()
	return &u, nil
}

// GetAll returns every row in storage order. A failing SELECT yields an
// empty list instead of an error; only connection failures are returned.
func (r *UserRepoPG) GetAll(ctx context.Context) ([]user.User, error) {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var models []UserSchema
	if err := db.Find(&models).Error; err != nil {
		r.log.Warn("failed to list users, returning empty list", zap.Error(err))
		return []user.User{}, nil
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// Update overwrites name and email of the row and returns the rows affected.
func (r *UserRepoPG) Update(ctx context.Context, id int32, name, email string) (int64, error) {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	res := db.Model(&UserSchema{}).Where("id = ?", id).Updates(map[string]any{
		"name":  name,
		"email": email,
	})
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.Int32("id", id))
		return 0, apperrors.NewDatabaseError("failed to update user", res.Error)
	}

	r.log.Info("user updated in db", zap.Int32("id", id), zap.Int64("rows_affected", res.RowsAffected))
	return res.RowsAffected, nil
}

// Delete removes the row and returns the rows affected.
func (r *UserRepoPG) Delete(ctx context.Context, id int32) (int64, error) {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	res := db.Where("id = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int32("id", id))
		return 0, apperrors.NewDatabaseError("failed to delete user", res.Error)
	}

	r.log.Info("user deleted in db", zap.Int32("id", id), zap.Int64("rows_affected", res.RowsAffected))
	return res.RowsAffected, nil
}

// Ping checks that a connection can be acquired and answers a trivial query.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	db, release, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := db.Exec("SELECT 1").Error; err != nil {
		return apperrors.NewDatabaseError("database ping failed", err)
	}
	return nil
}
