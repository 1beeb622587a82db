package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/access"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RelationChecker answers which of recipeIDs are in userID's list of kind.
	RelationChecker interface {
		GetRelatedRecipeIDs(ctx context.Context, userID uuid.UUID, kind entities.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	RecipeService interface {
		CreateRecipe(ctx context.Context, identity domain.Identity, req domain.RecipeRequest) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, identity domain.Identity, id string, req domain.RecipeRequest) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, identity domain.Identity, id string) error
		GetRecipe(ctx context.Context, identity domain.Identity, id string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, identity domain.Identity, filter domain.RecipeFilter, page, limit int) (domain.PaginatedResponse[domain.Recipe], error)
		GetShortLink(ctx context.Context, id string) (domain.ShortLinkResponse, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		relationChecker      RelationChecker
		subscriptionChecker  user.SubscriptionChecker
		s3                   storage.AwsS3
		appURL               string
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	relationChecker RelationChecker,
	subscriptionChecker user.SubscriptionChecker,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		relationChecker:      relationChecker,
		subscriptionChecker:  subscriptionChecker,
		s3:                   s3,
		appURL:               strings.TrimRight(utils.GetConfig("APP_URL"), "/"),
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, identity domain.Identity, req domain.RecipeRequest) (domain.Recipe, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.Recipe{}, err
	}

	parsed, err := ValidateRecipeRequest(req, true)
	if err != nil {
		return domain.Recipe{}, err
	}
	amounts, tags, err := s.resolve(ctx, parsed)
	if err != nil {
		return domain.Recipe{}, err
	}

	image, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    identity.UserID,
		Name:        strings.TrimSpace(req.Name),
		Image:       image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: amounts,
		Tags:        tags,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		s.deleteImage(ctx, image)
		return domain.Recipe{}, err
	}
	metrics.RecipesCreated.Inc()

	return s.GetRecipe(ctx, identity, recipe.ID.String())
}

func (s *recipeService) UpdateRecipe(ctx context.Context, identity domain.Identity, id string, req domain.RecipeRequest) (domain.Recipe, error) {
	existing, err := s.findRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := access.Authorize(identity, access.Write, existing.AuthorID); err != nil {
		return domain.Recipe{}, err
	}

	parsed, err := ValidateRecipeRequest(req, false)
	if err != nil {
		return domain.Recipe{}, err
	}
	amounts, tags, err := s.resolve(ctx, parsed)
	if err != nil {
		return domain.Recipe{}, err
	}

	image := existing.Image
	if req.Image != "" {
		if image, err = s.uploadImage(ctx, req.Image); err != nil {
			return domain.Recipe{}, err
		}
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, &entities.Recipe{
		ID:          existing.ID,
		Name:        strings.TrimSpace(req.Name),
		Image:       image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: amounts,
		Tags:        tags,
	}); err != nil {
		if image != existing.Image {
			s.deleteImage(ctx, image)
		}
		return domain.Recipe{}, err
	}
	if image != existing.Image {
		s.deleteImage(ctx, existing.Image)
	}

	return s.GetRecipe(ctx, identity, existing.ID.String())
}

func (s *recipeService) DeleteRecipe(ctx context.Context, identity domain.Identity, id string) error {
	existing, err := s.findRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(identity, access.Write, existing.AuthorID); err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, existing.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	metrics.RecipesDeleted.Inc()
	s.deleteImage(ctx, existing.Image)
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, identity domain.Identity, id string) (domain.Recipe, error) {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	res, err := s.toDomainList(ctx, identity, []*entities.Recipe{recipe})
	if err != nil {
		return domain.Recipe{}, err
	}
	return res[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, identity domain.Identity, filter domain.RecipeFilter, page, limit int) (domain.PaginatedResponse[domain.Recipe], error) {
	empty := domain.PaginatedResponse[domain.Recipe]{
		Results:    []domain.Recipe{},
		Pagination: domain.NewPagination(page, limit, 0),
	}

	var query RecipeQuery
	if filter.AuthorID != "" {
		authorID, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			return empty, nil
		}
		query.AuthorID = &authorID
	}
	for _, slug := range filter.TagSlugs {
		if slug = strings.TrimSpace(slug); slug != "" {
			query.TagSlugs = append(query.TagSlugs, slug)
		}
	}
	// the list filters mean nothing for an anonymous caller and are ignored
	if identity.Authenticated {
		if filter.IsFavorited {
			query.FavoritedBy = &identity.UserID
		}
		if filter.IsInShoppingCart {
			query.InCartOf = &identity.UserID
		}
	}

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, query, utils.Offset(page, limit), limit)
	if err != nil {
		return domain.PaginatedResponse[domain.Recipe]{}, err
	}

	results, err := s.toDomainList(ctx, identity, recipes)
	if err != nil {
		return domain.PaginatedResponse[domain.Recipe]{}, err
	}
	return domain.PaginatedResponse[domain.Recipe]{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *recipeService) GetShortLink(ctx context.Context, id string) (domain.ShortLinkResponse, error) {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	return domain.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/recipes/%s/", s.appURL, recipe.ID),
	}, nil
}

func (s *recipeService) findRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// resolve loads the referenced ingredients and tags. An id that does not
// exist is a validation error on its field.
func (s *recipeService) resolve(ctx context.Context, parsed ParsedRecipe) ([]entities.IngredientInRecipe, []entities.Tag, error) {
	ids := make([]uuid.UUID, 0, len(parsed.Amounts))
	for _, a := range parsed.Amounts {
		ids = append(ids, a.IngredientID)
	}
	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	found := make(map[uuid.UUID]bool, len(ingredients))
	for _, in := range ingredients {
		found[in.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, nil, domain.NewValidationError("ingredients", fmt.Sprintf("ingredient %s does not exist", id))
		}
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, parsed.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	foundTags := make(map[uuid.UUID]bool, len(tags))
	res := make([]entities.Tag, 0, len(tags))
	for _, t := range tags {
		foundTags[t.ID] = true
		res = append(res, *t)
	}
	for _, id := range parsed.TagIDs {
		if !foundTags[id] {
			return nil, nil, domain.NewValidationError("tags", fmt.Sprintf("tag %s does not exist", id))
		}
	}

	return parsed.Amounts, res, nil
}

func (s *recipeService) uploadImage(ctx context.Context, data string) (string, error) {
	file, err := storage.PrepareImage(data)
	if err != nil {
		return "", domain.ErrInvalidImage
	}
	objectKey, err := s.s3.UploadFile(ctx, file, storage.FolderRecipeImages)
	if err != nil {
		metrics.ImageUploadFailures.WithLabelValues(storage.FolderRecipeImages).Inc()
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) deleteImage(ctx context.Context, link string) {
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", key, err)
	}
}

// toDomainList projects recipes for identity. The favorite, cart and author
// subscription flags are fetched in one lookup each for the whole page.
func (s *recipeService) toDomainList(ctx context.Context, identity domain.Identity, recipes []*entities.Recipe) ([]domain.Recipe, error) {
	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	if identity.Authenticated && len(recipes) > 0 {
		ids := make([]uuid.UUID, 0, len(recipes))
		for _, r := range recipes {
			ids = append(ids, r.ID)
		}
		var err error
		if favorited, err = s.relationChecker.GetRelatedRecipeIDs(ctx, identity.UserID, entities.RelationFavorite, ids); err != nil {
			return nil, err
		}
		if inCart, err = s.relationChecker.GetRelatedRecipeIDs(ctx, identity.UserID, entities.RelationShoppingCart, ids); err != nil {
			return nil, err
		}
	}

	authors := make([]*entities.User, 0, len(recipes))
	for _, r := range recipes {
		authors = append(authors, r.Author)
	}
	subscribed, err := user.SubscribedTo(ctx, s.subscriptionChecker, identity, authors)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, ToDomain(r, favorited[r.ID], inCart[r.ID], subscribed[r.AuthorID]))
	}
	return res, nil
}

func ToDomain(recipe *entities.Recipe, isFavorited, isInShoppingCart, authorSubscribed bool) domain.Recipe {
	tags := make([]domain.Tag, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, tag.ToDomain(&recipe.Tags[i]))
	}

	ingredients := make([]domain.RecipeIngredient, 0, len(recipe.Ingredients))
	for _, in := range recipe.Ingredients {
		item := domain.RecipeIngredient{
			ID:     in.IngredientID.String(),
			Amount: in.Amount,
		}
		if in.Ingredient != nil {
			item.Name = in.Ingredient.Name
			item.MeasurementUnit = in.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}
	sort.SliceStable(ingredients, func(i, j int) bool {
		if ingredients[i].Name != ingredients[j].Name {
			return ingredients[i].Name < ingredients[j].Name
		}
		return ingredients[i].MeasurementUnit < ingredients[j].MeasurementUnit
	})

	return domain.Recipe{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           user.ToDomain(recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}
}

func ToShort(recipe *entities.Recipe) domain.RecipeShort {
	return domain.RecipeShort{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// ParsedRecipe is a RecipeRequest with its ids parsed.
type ParsedRecipe struct {
	Amounts []entities.IngredientInRecipe
	TagIDs  []uuid.UUID
}

// ValidateRecipeRequest checks a create or update payload without touching
// storage. All field problems are reported together.
func ValidateRecipeRequest(req domain.RecipeRequest, imageRequired bool) (ParsedRecipe, error) {
	if len(req.Ingredients) == 0 || len(req.Tags) == 0 {
		return ParsedRecipe{}, domain.ErrNotEnoughRecipeData
	}

	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields["name"] = "this field is required"
	case utf8.RuneCountInString(name) > domain.MaxRecipeNameLen:
		fields["name"] = fmt.Sprintf("ensure this field has no more than %d characters", domain.MaxRecipeNameLen)
	}
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "this field is required"
	}
	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
		fields["cooking_time"] = fmt.Sprintf("ensure this value is between %d and %d", domain.MinCookingTime, domain.MaxCookingTime)
	}
	if imageRequired && req.Image == "" {
		fields["image"] = "this field is required"
	}

	var parsed ParsedRecipe
	seen := make(map[uuid.UUID]bool, len(req.Ingredients))
	for i, in := range req.Ingredients {
		id, err := uuid.Parse(in.ID)
		if err != nil {
			fields[fmt.Sprintf("ingredients[%d].id", i)] = "must be a valid UUID"
			continue
		}
		if in.Amount < domain.MinIngredientAmount || in.Amount > domain.MaxIngredientAmount {
			fields[fmt.Sprintf("ingredients[%d].amount", i)] = fmt.Sprintf("ensure this value is between %d and %d", domain.MinIngredientAmount, domain.MaxIngredientAmount)
		}
		if seen[id] {
			fields["ingredients"] = domain.ErrDuplicateIngredients.Fields["ingredients"]
			continue
		}
		seen[id] = true
		parsed.Amounts = append(parsed.Amounts, entities.IngredientInRecipe{IngredientID: id, Amount: in.Amount})
	}

	seenTags := make(map[uuid.UUID]bool, len(req.Tags))
	for i, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			fields[fmt.Sprintf("tags[%d]", i)] = "must be a valid UUID"
			continue
		}
		if seenTags[id] {
			fields["tags"] = domain.ErrDuplicateTags.Fields["tags"]
			continue
		}
		seenTags[id] = true
		parsed.TagIDs = append(parsed.TagIDs, id)
	}

	if len(fields) > 0 {
		return ParsedRecipe{}, &domain.ValidationError{Fields: fields}
	}
	return parsed, nil
}
