package ingredient

import (
	"Foodgram-Backend/entities"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	IngredientRepository interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		CreateIngredients(ctx context.Context, ingredients []*entities.Ingredient) (int64, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})

	if namePrefix != "" {
		query = query.Where("name ILIKE ?", escapeLike(namePrefix)+"%")
	}

	if err := query.Order("name asc").Order("measurement_unit asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredients inserts the catalog rows, skipping (name, unit) pairs
// that already exist. It returns the number of new rows.
func (r *ingredientRepository) CreateIngredients(ctx context.Context, ingredients []*entities.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(ingredients, 500)
	return res.RowsAffected, res.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
