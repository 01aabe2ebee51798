package infrastructure

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"raw-user-service/internal/adapter/db/postgres"
	"raw-user-service/internal/config"
)

func sqliteConfig(t *testing.T, policy string) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			URL:          filepath.Join(t.TempDir(), "users.db"),
			Driver:       config.DriverSQLite,
			ConnPolicy:   policy,
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Logger: config.LoggerConfig{Level: "warn", SlowQuerySeconds: 0.2},
	}
}

func TestNewDialector(t *testing.T) {
	cfg := &config.Config{DB: config.DatabaseConfig{URL: "postgres://localhost/users", Driver: config.DriverPostgres}}
	d, err := NewDialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.DB.Driver = config.DriverSQLite
	d, err = NewDialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	cfg.DB.Driver = "mysql"
	_, err = NewDialector(cfg)
	assert.Error(t, err)
}

func TestNewConnector(t *testing.T) {
	for _, policy := range []string{config.PolicyPooled, config.PolicyPerCall} {
		t.Run(policy, func(t *testing.T) {
			l := zaptest.NewLogger(t)
			conn, db, err := NewConnector(sqliteConfig(t, policy), l)
			require.NoError(t, err)
			if policy == config.PolicyPooled {
				assert.NotNil(t, db)
			} else {
				assert.Nil(t, db)
			}

			repo := postgres.NewUserRepoPG(conn, l)
			ctx := context.Background()
			require.NoError(t, repo.EnsureSchema(ctx))
			require.NoError(t, repo.Insert(ctx, "Ann", "a@x.com"))

			users, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)

			assert.NoError(t, conn.Close())
		})
	}
}

func TestNewConnector_UnknownPolicy(t *testing.T) {
	_, _, err := NewConnector(sqliteConfig(t, "shared"), zaptest.NewLogger(t))
	assert.Error(t, err)
}
