package relation

import (
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RelationRepository interface {
		CreateRelation(ctx context.Context, relation *entities.UserRecipeRelation) error
		DeleteRelation(ctx context.Context, userID, recipeID uuid.UUID, kind entities.RelationKind) (bool, error)
		GetRelatedRecipeIDs(ctx context.Context, userID uuid.UUID, kind entities.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	relationRepository struct {
		db *gorm.DB
	}
)

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// CreateRelation fails with gorm.ErrDuplicatedKey when the pair is already
// in the list.
func (r *relationRepository) CreateRelation(ctx context.Context, relation *entities.UserRecipeRelation) error {
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(relation).Error
}

func (r *relationRepository) DeleteRelation(ctx context.Context, userID, recipeID uuid.UUID, kind entities.RelationKind) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&entities.UserRecipeRelation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *relationRepository) GetRelatedRecipeIDs(ctx context.Context, userID uuid.UUID, kind entities.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	related := make(map[uuid.UUID]bool)
	if len(recipeIDs) == 0 {
		return related, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.UserRecipeRelation{}).
		Where("user_id = ? AND kind = ? AND recipe_id IN ?", userID, kind, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		related[id] = true
	}
	return related, nil
}
