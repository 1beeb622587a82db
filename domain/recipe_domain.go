package domain

import (
	"fmt"
	"time"
)

const (
	MinCookingTime      = 1
	MaxCookingTime      = 32000
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
	MaxRecipeNameLen    = 128
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessGetShortLink    = "success get recipe link"
	MessageSuccessAddToFavorite   = "recipe added to favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromList  = "recipe removed from list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedGetShortLink    = "failed to get recipe link"
	MessageFailedAddToList       = "failed to add recipe to list"
	MessageFailedRemoveFromList  = "failed to remove recipe from list"
	MessageFailedShoppingList    = "failed to build shopping list"

	ErrRecipeNotFound       = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrRecipeNotInList      = fmt.Errorf("%w: recipe not found in list", ErrNotFound)
	ErrRecipeAlreadyInList  = fmt.Errorf("%w: recipe is already in list", ErrConflict)
	ErrUnknownRelationKind  = fmt.Errorf("%w: unknown relation kind", ErrValidation)
	ErrIngredientNotFound   = fmt.Errorf("%w: ingredient not found", ErrNotFound)
	ErrTagNotFound          = fmt.Errorf("%w: tag not found", ErrNotFound)
	ErrInvalidImage         = NewValidationError("image", "image must be a base64 encoded png, jpg or jpeg data URI")
	ErrNotEnoughRecipeData  = NewValidationError("non_field_errors", "ingredients and tags are required")
	ErrDuplicateIngredients = NewValidationError("ingredients", "ingredients must be unique")
	ErrDuplicateTags        = NewValidationError("tags", "tags must be unique")
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=32000"`
	}

	// RecipeRequest is the payload of both create and update. Image is
	// optional on update only.
	RecipeRequest struct {
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,min=1,dive"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Image       string                    `json:"image" validate:"omitempty,data_image"`
		Name        string                    `json:"name" validate:"required,max=128"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	}

	RecipeFilter struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Tags             []Tag              `json:"tags"`
		Author           User               `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		CreatedAt        time.Time          `json:"created_at"`
	}

	RecipeShort struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)
