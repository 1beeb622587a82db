package shoppinglist

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]domain.CartIngredient, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// GetCartIngredients returns one row per ingredient of every recipe in the
// user's cart, unaggregated.
func (r *shoppingListRepository) GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]domain.CartIngredient, error) {
	var rows []domain.CartIngredient
	if err := r.db.WithContext(ctx).
		Table("user_recipe_relations").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredients_in_recipe.amount AS amount").
		Joins("JOIN ingredients_in_recipe ON ingredients_in_recipe.recipe_id = user_recipe_relations.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredients_in_recipe.ingredient_id").
		Where("user_recipe_relations.user_id = ? AND user_recipe_relations.kind = ?", userID, entities.RelationShoppingCart).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
