package recipe

import (
	"Foodgram-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeQuery narrows a recipe listing. Nil fields do not filter.
	RecipeQuery struct {
		AuthorID    *uuid.UUID
		TagSlugs    []string
		FavoritedBy *uuid.UUID
		InCartOf    *uuid.UUID
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query RecipeQuery, offset, limit int) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) (map[uuid.UUID][]*entities.Recipe, error)
		CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe stores the recipe with its ingredient amounts and tags in one
// transaction. recipe.Tags must already exist.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := insertIngredients(tx, recipe.ID, recipe.Ingredients); err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(recipe.Tags)
	})
}

// UpdateRecipe overwrites the scalar fields and replaces the full ingredient
// and tag sets of an existing recipe.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := insertIngredients(tx, recipe.ID, recipe.Ingredients); err != nil {
			return err
		}
		return tx.Model(&entities.Recipe{ID: recipe.ID}).Association("Tags").Replace(recipe.Tags)
	})
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []entities.IngredientInRecipe) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := make([]entities.IngredientInRecipe, 0, len(ingredients))
	for _, in := range ingredients {
		rows = append(rows, entities.IngredientInRecipe{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}
	// a repeated (recipe, ingredient) pair keeps the first amount
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&rows).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.UserRecipeRelation{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetails(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query RecipeQuery, offset, limit int) ([]*entities.Recipe, int64, error) {
	var count int64
	if err := r.filter(r.db.WithContext(ctx).Model(&entities.Recipe{}), query).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	if err := withDetails(r.filter(r.db.WithContext(ctx), query)).
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// filter applies query as subqueries so a recipe matching several tags is
// still counted and returned once.
func (r *recipeRepository) filter(db *gorm.DB, query RecipeQuery) *gorm.DB {
	if query.AuthorID != nil {
		db = db.Where("recipes.author_id = ?", *query.AuthorID)
	}
	if len(query.TagSlugs) > 0 {
		db = db.Where("recipes.id IN (?)", r.db.
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", query.TagSlugs))
	}
	if query.FavoritedBy != nil {
		db = db.Where("recipes.id IN (?)", r.relationSubquery(*query.FavoritedBy, entities.RelationFavorite))
	}
	if query.InCartOf != nil {
		db = db.Where("recipes.id IN (?)", r.relationSubquery(*query.InCartOf, entities.RelationShoppingCart))
	}
	return db
}

func (r *recipeRepository) relationSubquery(userID uuid.UUID, kind entities.RelationKind) *gorm.DB {
	return r.db.Model(&entities.UserRecipeRelation{}).
		Select("recipe_id").
		Where("user_id = ? AND kind = ?", userID, kind)
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name asc") }).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

// GetRecipesByAuthors returns the newest recipes of each author, at most
// limit per author when limit is positive, in one round trip.
func (r *recipeRepository) GetRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) (map[uuid.UUID][]*entities.Recipe, error) {
	byAuthor := make(map[uuid.UUID][]*entities.Recipe, len(authorIDs))
	if len(authorIDs) == 0 {
		return byAuthor, nil
	}

	ranked := r.db.Model(&entities.Recipe{}).
		Select("recipes.*, ROW_NUMBER() OVER (PARTITION BY recipes.author_id ORDER BY recipes.created_at DESC) AS rn").
		Where("recipes.author_id IN ?", authorIDs)
	query := r.db.WithContext(ctx).
		Table("(?) AS ranked", ranked).
		Select("ranked.id, ranked.author_id, ranked.name, ranked.image, ranked.text, ranked.cooking_time, ranked.created_at, ranked.updated_at")
	if limit > 0 {
		query = query.Where("ranked.rn <= ?", limit)
	}

	var recipes []*entities.Recipe
	if err := query.Order("ranked.rn asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	for _, recipe := range recipes {
		byAuthor[recipe.AuthorID] = append(byAuthor[recipe.AuthorID], recipe)
	}
	return byAuthor, nil
}

func (r *recipeRepository) CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS count").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Count
	}
	return counts, nil
}
