package subscription

import (
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		CreateSubscription(ctx context.Context, subscription *entities.Subscription) error
		DeleteSubscription(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
		GetSubscribedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetSubscribedAuthors(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.User, int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Omit("User", "Author").Create(subscription).Error
}

func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) GetSubscribedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	subscribed := make(map[uuid.UUID]bool)
	if len(authorIDs) == 0 {
		return subscribed, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		subscribed[id] = true
	}
	return subscribed, nil
}

// GetSubscribedAuthors pages through the authors userID follows, ordered by
// username.
func (r *subscriptionRepository) GetSubscribedAuthors(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entities.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []*entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.username asc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
