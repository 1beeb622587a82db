package user

import (
	"Foodgram-Backend/entities"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		RegisterUser(ctx context.Context, user *entities.User) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		CheckUserExists(ctx context.Context, email, username string) (bool, bool, error)
		GetUsers(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error)
		UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar string) error
		UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) RegisterUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckUserExists reports whether the email and the username are taken.
func (r *userRepository) CheckUserExists(ctx context.Context, email, username string) (bool, bool, error) {
	var emailCount, usernameCount int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("LOWER(email) = LOWER(?)", email).Count(&emailCount).Error; err != nil {
		return false, false, err
	}
	if err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("username = ?", username).Count(&usernameCount).Error; err != nil {
		return false, false, err
	}
	return emailCount > 0, usernameCount > 0, nil
}

func (r *userRepository) GetUsers(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + escapeLike(search) + "%"
		return db.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&entities.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*entities.User
	if err := filter(r.db.WithContext(ctx)).
		Order("username asc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("avatar", avatar).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
