package relation

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/pkg/access"
	"Foodgram-Backend/pkg/recipe"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RelationService manages per-user recipe lists. Favorites and the
	// shopping cart are two kinds of the same list.
	RelationService interface {
		AddRecipe(ctx context.Context, identity domain.Identity, kind entities.RelationKind, recipeID string) (domain.RecipeShort, error)
		RemoveRecipe(ctx context.Context, identity domain.Identity, kind entities.RelationKind, recipeID string) error
	}

	relationService struct {
		relationRepository RelationRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewRelationService(relationRepository RelationRepository, recipeRepository recipe.RecipeRepository) RelationService {
	return &relationService{
		relationRepository: relationRepository,
		recipeRepository:   recipeRepository,
	}
}

func ParseKind(kind string) (entities.RelationKind, error) {
	switch entities.RelationKind(kind) {
	case entities.RelationFavorite, entities.RelationShoppingCart:
		return entities.RelationKind(kind), nil
	default:
		return "", domain.ErrUnknownRelationKind
	}
}

func (s *relationService) AddRecipe(ctx context.Context, identity domain.Identity, kind entities.RelationKind, recipeID string) (domain.RecipeShort, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.RecipeShort{}, err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return domain.RecipeShort{}, err
	}

	target, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeShort{}, err
	}

	if err := s.relationRepository.CreateRelation(ctx, &entities.UserRecipeRelation{
		ID:       uuid.New(),
		UserID:   identity.UserID,
		RecipeID: target.ID,
		Kind:     kind,
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShort{}, domain.ErrRecipeAlreadyInList
		}
		return domain.RecipeShort{}, err
	}
	metrics.RelationChanges.WithLabelValues(string(kind), "add").Inc()

	return recipe.ToShort(target), nil
}

func (s *relationService) RemoveRecipe(ctx context.Context, identity domain.Identity, kind entities.RelationKind, recipeID string) error {
	if err := access.RequireAuthenticated(identity); err != nil {
		return err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	target, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	deleted, err := s.relationRepository.DeleteRelation(ctx, identity.UserID, target.ID, kind)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrRecipeNotInList
	}
	metrics.RelationChanges.WithLabelValues(string(kind), "remove").Inc()
	return nil
}

func (s *relationService) findRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	target, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return target, nil
}
