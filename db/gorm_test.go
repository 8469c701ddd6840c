package db_test

import (
	"context"
	"strings"
	"testing"

	"meditation-backend/config"
	"meditation-backend/core/auth"
	"meditation-backend/db"
	"meditation-backend/internal/testdb"
	"meditation-backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromParts(t *testing.T) {
	cfg := &config.Config{DBUser: "calm", DBPassword: "s3cret", DBHost: "db", DBPort: "3306", DBName: "meditation"}
	dsn := db.DSN(cfg)
	assert.True(t, strings.HasPrefix(dsn, "calm:s3cret@tcp(db:3306)/meditation?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "u:p@tcp(h:1)/x", DBHost: "ignored"}
	assert.Equal(t, "u:p@tcp(h:1)/x", db.DSN(cfg))
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := testdb.Open(t)
	cfg := &config.Config{AdminEmail: "admin@calm.test", AdminPassword: "breathe-in"}
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx, gdb, cfg))
	require.NoError(t, db.Seed(ctx, gdb, cfg))

	var meditations int64
	require.NoError(t, gdb.Model(&model.Meditation{}).Count(&meditations).Error)
	assert.Equal(t, int64(2), meditations)

	var admins []model.User
	require.NoError(t, gdb.Where("is_admin = ?", true).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@calm.test", admins[0].Email)
	assert.True(t, auth.CheckPasswordHash("breathe-in", admins[0].PasswordHash))
}

func TestSeedSkipsAdminWithoutCredentials(t *testing.T) {
	gdb := testdb.Open(t)
	require.NoError(t, db.Seed(context.Background(), gdb, &config.Config{}))

	var users int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestSeedSkipsAdminWhenOneExists(t *testing.T) {
	gdb := testdb.Open(t)
	require.NoError(t, gdb.Create(&model.User{Email: "owner@calm.test", PasswordHash: "x", IsAdmin: true}).Error)

	cfg := &config.Config{AdminEmail: "admin@calm.test", AdminPassword: "breathe-in"}
	require.NoError(t, db.Seed(context.Background(), gdb, cfg))

	var admins []model.User
	require.NoError(t, gdb.Where("is_admin = ?", true).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "owner@calm.test", admins[0].Email)

	var bootstrap int64
	require.NoError(t, gdb.Model(&model.User{}).Where("email = ?", "admin@calm.test").Count(&bootstrap).Error)
	assert.Zero(t, bootstrap)
}
