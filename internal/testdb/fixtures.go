package testdb

import (
	"Foodgram-Backend/entities"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "test",
		Password:  "x",
		Role:      "user",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return ingredient
}

func CreateTag(t *testing.T, db *gorm.DB, name, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{ID: uuid.New(), Name: name, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create tag %s: %v", slug, err)
	}
	return tag
}

// Amount is shorthand for one ingredient line of a recipe.
func Amount(ingredient *entities.Ingredient, amount int) entities.IngredientInRecipe {
	return entities.IngredientInRecipe{IngredientID: ingredient.ID, Amount: amount}
}
