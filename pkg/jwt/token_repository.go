package jwt

import (
	"Foodgram-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TokenRepository interface {
		CreateToken(ctx context.Context, token *entities.AuthToken) error
		TokenExists(ctx context.Context, id uuid.UUID) (bool, error)
		DeleteToken(ctx context.Context, id uuid.UUID) (bool, error)
		DeleteExpiredTokens(ctx context.Context, userID uuid.UUID, now time.Time) error
	}

	tokenRepository struct {
		db *gorm.DB
	}
)

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) CreateToken(ctx context.Context, token *entities.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) TokenExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.AuthToken{}).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepository) DeleteToken(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AuthToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&entities.AuthToken{}).Error
}
