package relation

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type relationKey struct {
	user, recipe uuid.UUID
	kind         entities.RelationKind
}

// memoryRelations behaves like the unique index on (user, recipe, kind).
type memoryRelations map[relationKey]bool

func (m memoryRelations) CreateRelation(_ context.Context, rel *entities.UserRecipeRelation) error {
	key := relationKey{rel.UserID, rel.RecipeID, rel.Kind}
	if m[key] {
		return gorm.ErrDuplicatedKey
	}
	m[key] = true
	return nil
}

func (m memoryRelations) DeleteRelation(_ context.Context, userID, recipeID uuid.UUID, kind entities.RelationKind) (bool, error) {
	key := relationKey{userID, recipeID, kind}
	if !m[key] {
		return false, nil
	}
	delete(m, key)
	return true, nil
}

func (m memoryRelations) GetRelatedRecipeIDs(_ context.Context, userID uuid.UUID, kind entities.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	res := map[uuid.UUID]bool{}
	for _, id := range recipeIDs {
		if m[relationKey{userID, id, kind}] {
			res[id] = true
		}
	}
	return res, nil
}

type recipeStore struct {
	recipe.RecipeRepository
	recipes map[string]*entities.Recipe
}

func (s recipeStore) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	if r, ok := s.recipes[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func setup() (RelationService, memoryRelations, *entities.Recipe) {
	pancakes := &entities.Recipe{ID: uuid.New(), Name: "Pancakes", Image: "https://cdn.example.com/p.png", CookingTime: 20}
	relations := memoryRelations{}
	svc := NewRelationService(relations, recipeStore{recipes: map[string]*entities.Recipe{pancakes.ID.String(): pancakes}})
	return svc, relations, pancakes
}

func cook() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Role: domain.RoleUser, Authenticated: true}
}

func TestAddRecipe(t *testing.T) {
	for _, kind := range []entities.RelationKind{entities.RelationFavorite, entities.RelationShoppingCart} {
		t.Run(string(kind), func(t *testing.T) {
			svc, relations, pancakes := setup()
			identity := cook()

			short, err := svc.AddRecipe(context.Background(), identity, kind, pancakes.ID.String())
			require.NoError(t, err)
			assert.Equal(t, domain.RecipeShort{
				ID:          pancakes.ID.String(),
				Name:        "Pancakes",
				Image:       "https://cdn.example.com/p.png",
				CookingTime: 20,
			}, short)
			assert.Len(t, relations, 1)

			_, err = svc.AddRecipe(context.Background(), identity, kind, pancakes.ID.String())
			assert.ErrorIs(t, err, domain.ErrRecipeAlreadyInList)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Len(t, relations, 1)
		})
	}
}

func TestAddRecipe_KindsAreIndependent(t *testing.T) {
	svc, relations, pancakes := setup()
	identity := cook()

	_, err := svc.AddRecipe(context.Background(), identity, entities.RelationFavorite, pancakes.ID.String())
	require.NoError(t, err)
	_, err = svc.AddRecipe(context.Background(), identity, entities.RelationShoppingCart, pancakes.ID.String())
	require.NoError(t, err)
	assert.Len(t, relations, 2)
}

func TestAddRecipe_Errors(t *testing.T) {
	svc, relations, pancakes := setup()

	_, err := svc.AddRecipe(context.Background(), domain.Anonymous(), entities.RelationFavorite, pancakes.ID.String())
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	_, err = svc.AddRecipe(context.Background(), cook(), entities.RelationFavorite, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = svc.AddRecipe(context.Background(), cook(), entities.RelationKind("bookmark"), pancakes.ID.String())
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, relations)
}

func TestRemoveRecipe(t *testing.T) {
	svc, relations, pancakes := setup()
	identity := cook()

	err := svc.RemoveRecipe(context.Background(), identity, entities.RelationShoppingCart, pancakes.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotInList)

	_, err = svc.AddRecipe(context.Background(), identity, entities.RelationShoppingCart, pancakes.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveRecipe(context.Background(), identity, entities.RelationShoppingCart, pancakes.ID.String()))
	assert.Empty(t, relations)

	err = svc.RemoveRecipe(context.Background(), identity, entities.RelationShoppingCart, pancakes.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.RemoveRecipe(context.Background(), identity, entities.RelationShoppingCart, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("favorite")
	require.NoError(t, err)
	assert.Equal(t, entities.RelationFavorite, kind)

	kind, err = ParseKind("shopping_cart")
	require.NoError(t, err)
	assert.Equal(t, entities.RelationShoppingCart, kind)

	_, err = ParseKind("history")
	assert.ErrorIs(t, err, domain.ErrUnknownRelationKind)
}
