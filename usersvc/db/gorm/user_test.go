package gorm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ichigozero/todokit/backend/usersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	stdgorm "gorm.io/gorm"
)

func newTestDB(t *testing.T) *stdgorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := stdgorm.Open(sqlite.Open(dsn), &stdgorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usersvc.User{}))

	return db
}

func TestUserCreate(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, "a@x.com", "hash1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash1", found.PasswordHash)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "a@x.com", "hash1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "a@x.com", "hash2")
	assert.ErrorIs(t, err, usersvc.ErrEmailTaken)
}

func TestUserFindByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, usersvc.ErrUserNotFound)

	// Lookups are exact, not case folded.
	_, err = repo.Create(ctx, "a@x.com", "hash1")
	require.NoError(t, err)
	_, err = repo.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, usersvc.ErrUserNotFound)
}
