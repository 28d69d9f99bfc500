package gorm

import (
	"context"
	"errors"

	"github.com/ichigozero/todokit/backend/usersvc"
	stdgorm "gorm.io/gorm"
)

type userRepository struct {
	db *stdgorm.DB
}

func NewUserRepository(db *stdgorm.DB) usersvc.UserRepository {
	return &userRepository{db}
}

// Create inserts a new identity. The unique index on email is the arbiter
// for concurrent registrations of the same address: the loser surfaces
// ErrEmailTaken, never a second success.
func (u *userRepository) Create(ctx context.Context, email, passwordHash string) (usersvc.User, error) {
	user := usersvc.User{Email: email, PasswordHash: passwordHash}
	result := u.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if errors.Is(result.Error, stdgorm.ErrDuplicatedKey) {
			return usersvc.User{}, usersvc.ErrEmailTaken
		}
		return usersvc.User{}, result.Error
	}

	return user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (usersvc.User, error) {
	var user usersvc.User
	result := u.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, stdgorm.ErrRecordNotFound) {
			return usersvc.User{}, usersvc.ErrUserNotFound
		}
		return usersvc.User{}, result.Error
	}

	return user, nil
}
