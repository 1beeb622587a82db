package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/access"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, identity domain.Identity, authorID string, recipesLimit int) (domain.Subscription, error)
		Unsubscribe(ctx context.Context, identity domain.Identity, authorID string) error
		GetSubscriptions(ctx context.Context, identity domain.Identity, page, limit, recipesLimit int) (domain.PaginatedResponse[domain.Subscription], error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
		recipeRepository       recipe.RecipeRepository
	}
)

func NewSubscriptionService(
	subscriptionRepository SubscriptionRepository,
	userRepository user.UserRepository,
	recipeRepository recipe.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		recipeRepository:       recipeRepository,
	}
}

// Subscribe makes the caller follow authorID. recipesLimit caps the recipes
// embedded in the response; zero or less means all of them.
func (s *subscriptionService) Subscribe(ctx context.Context, identity domain.Identity, authorID string, recipesLimit int) (domain.Subscription, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.Subscription{}, err
	}
	id, err := uuid.Parse(authorID)
	if err != nil {
		return domain.Subscription{}, domain.ErrUserNotFound
	}
	if id == identity.UserID {
		return domain.Subscription{}, domain.ErrSubscribeToSelf
	}

	author, err := s.findAuthor(ctx, id.String())
	if err != nil {
		return domain.Subscription{}, err
	}

	if err := s.subscriptionRepository.CreateSubscription(ctx, &entities.Subscription{
		ID:       uuid.New(),
		UserID:   identity.UserID,
		AuthorID: author.ID,
	}); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domain.Subscription{}, domain.ErrAlreadySubscribed
		case errors.Is(err, gorm.ErrCheckConstraintViolated):
			return domain.Subscription{}, domain.ErrSubscribeToSelf
		}
		return domain.Subscription{}, err
	}
	metrics.SubscriptionChanges.WithLabelValues("subscribe").Inc()

	subscriptions, err := s.toDomainList(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	return subscriptions[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, identity domain.Identity, authorID string) error {
	if err := access.RequireAuthenticated(identity); err != nil {
		return err
	}

	author, err := s.findAuthor(ctx, authorID)
	if err != nil {
		return err
	}

	deleted, err := s.subscriptionRepository.DeleteSubscription(ctx, identity.UserID, author.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrSubscriptionNotFound
	}
	metrics.SubscriptionChanges.WithLabelValues("unsubscribe").Inc()
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, identity domain.Identity, page, limit, recipesLimit int) (domain.PaginatedResponse[domain.Subscription], error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.PaginatedResponse[domain.Subscription]{}, err
	}

	authors, total, err := s.subscriptionRepository.GetSubscribedAuthors(ctx, identity.UserID, utils.Offset(page, limit), limit)
	if err != nil {
		return domain.PaginatedResponse[domain.Subscription]{}, err
	}

	results, err := s.toDomainList(ctx, authors, recipesLimit)
	if err != nil {
		return domain.PaginatedResponse[domain.Subscription]{}, err
	}
	return domain.PaginatedResponse[domain.Subscription]{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *subscriptionService) findAuthor(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	author, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return author, nil
}

// toDomainList builds the followed-author view. Every author here is followed
// by the caller, so is_subscribed is always true.
func (s *subscriptionService) toDomainList(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.Subscription, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.recipeRepository.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}
	recipesByAuthor, err := s.recipeRepository.GetRecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Subscription, 0, len(authors))
	for _, a := range authors {
		recipes := recipesByAuthor[a.ID]
		shorts := make([]domain.RecipeShort, 0, len(recipes))
		for _, r := range recipes {
			shorts = append(shorts, recipe.ToShort(r))
		}
		res = append(res, domain.Subscription{
			User:         user.ToDomain(a, true),
			Recipes:      shorts,
			RecipesCount: counts[a.ID],
		})
	}
	return res, nil
}
