package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Image       string    `gorm:"not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null;index;check:cooking_time BETWEEN 1 AND 32000" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"type:timestamp;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp" json:"updated_at"`

	Author      *User                `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientInRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []Tag                `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
}

// IngredientInRecipe holds the amount of one ingredient in one recipe. The
// (recipe_id, ingredient_id) pair is unique.
type IngredientInRecipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int       `gorm:"not null;check:amount BETWEEN 1 AND 32000" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (IngredientInRecipe) TableName() string {
	return "ingredients_in_recipe"
}

type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
)

// UserRecipeRelation is the shared shape behind favorites and the shopping
// cart; Kind tells them apart.
type UserRecipeRelation struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_kind" json:"user_id"`
	RecipeID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_kind;index" json:"recipe_id"`
	Kind      RelationKind `gorm:"size:20;not null;uniqueIndex:idx_user_recipe_kind" json:"kind"`
	CreatedAt time.Time    `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_author;index;check:author_id <> user_id" json:"author_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
