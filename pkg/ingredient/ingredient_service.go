package ingredient

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}

	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, ToDomain(ingredient))
	}
	return res, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string) (domain.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Ingredient{}, domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return ToDomain(ingredient), nil
}

func ToDomain(ingredient *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
