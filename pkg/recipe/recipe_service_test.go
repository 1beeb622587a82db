package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *MockRecipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *MockRecipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetRecipes(ctx context.Context, query RecipeQuery, offset, limit int) ([]*entities.Recipe, int64, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) GetRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) (map[uuid.UUID][]*entities.Recipe, error) {
	args := m.Called(ctx, authorIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*entities.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

// catalog is an in-memory stand-in for the ingredient and tag repositories.
type catalog struct {
	ingredients map[uuid.UUID]*entities.Ingredient
	tags        map[uuid.UUID]*entities.Tag
}

func (c *catalog) GetIngredients(context.Context, string) ([]*entities.Ingredient, error) {
	return nil, errors.New("not used")
}

func (c *catalog) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	if in, ok := c.ingredients[uuid.MustParse(id)]; ok {
		return in, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *catalog) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, id := range ids {
		if in, ok := c.ingredients[id]; ok {
			res = append(res, in)
		}
	}
	return res, nil
}

func (c *catalog) CreateIngredients(context.Context, []*entities.Ingredient) (int64, error) {
	return 0, errors.New("not used")
}

type tagCatalog struct{ *catalog }

func (c tagCatalog) GetTags(context.Context) ([]*entities.Tag, error) {
	return nil, errors.New("not used")
}

func (c tagCatalog) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	if t, ok := c.tags[uuid.MustParse(id)]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c tagCatalog) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var res []*entities.Tag
	for _, id := range ids {
		if t, ok := c.tags[id]; ok {
			res = append(res, t)
		}
	}
	return res, nil
}

func (c tagCatalog) CreateTags(context.Context, []*entities.Tag) (int64, error) {
	return 0, errors.New("not used")
}

type relationSet map[entities.RelationKind]map[uuid.UUID]bool

func (r relationSet) GetRelatedRecipeIDs(_ context.Context, _ uuid.UUID, kind entities.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	res := map[uuid.UUID]bool{}
	for _, id := range recipeIDs {
		if r[kind][id] {
			res[id] = true
		}
	}
	return res, nil
}

type subscriptionSet map[uuid.UUID]bool

func (s subscriptionSet) GetSubscribedAuthorIDs(_ context.Context, _ uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	res := map[uuid.UUID]bool{}
	for _, id := range authorIDs {
		if s[id] {
			res[id] = true
		}
	}
	return res, nil
}

type MockAwsS3 struct {
	mock.Mock
}

func (m *MockAwsS3) UploadFile(ctx context.Context, file *storage.ImageFile, folder string) (string, error) {
	args := m.Called(ctx, file, folder)
	return args.String(0), args.Error(1)
}

func (m *MockAwsS3) DeleteFile(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}

func (m *MockAwsS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

func (m *MockAwsS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://cdn.example.com/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://cdn.example.com/")
}

type fixture struct {
	svc     *recipeService
	repo    *MockRecipeRepository
	s3      *MockAwsS3
	catalog *catalog
	egg     *entities.Ingredient
	milk    *entities.Ingredient
	flour   *entities.Ingredient
	lunch   *entities.Tag
	dinner  *entities.Tag
	author  *entities.User
}

func newFixture(relations relationSet, subscriptions subscriptionSet) *fixture {
	f := &fixture{
		repo:   new(MockRecipeRepository),
		s3:     new(MockAwsS3),
		egg:    &entities.Ingredient{ID: uuid.New(), Name: "egg", MeasurementUnit: "pcs"},
		milk:   &entities.Ingredient{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"},
		flour:  &entities.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"},
		lunch:  &entities.Tag{ID: uuid.New(), Name: "Lunch", Slug: "lunch"},
		dinner: &entities.Tag{ID: uuid.New(), Name: "Dinner", Slug: "dinner"},
		author: &entities.User{ID: uuid.New(), Username: "chef", Email: "chef@example.com"},
	}
	f.catalog = &catalog{
		ingredients: map[uuid.UUID]*entities.Ingredient{f.egg.ID: f.egg, f.milk.ID: f.milk, f.flour.ID: f.flour},
		tags:        map[uuid.UUID]*entities.Tag{f.lunch.ID: f.lunch, f.dinner.ID: f.dinner},
	}
	if relations == nil {
		relations = relationSet{}
	}
	f.svc = &recipeService{
		recipeRepository:     f.repo,
		ingredientRepository: f.catalog,
		tagRepository:        tagCatalog{f.catalog},
		relationChecker:      relations,
		subscriptionChecker:  subscriptions,
		s3:                   f.s3,
		appURL:               "https://foodgram.example",
	}
	return f
}

func (f *fixture) stored(id uuid.UUID, amounts map[*entities.Ingredient]int) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:          id,
		AuthorID:    f.author.ID,
		Author:      f.author,
		Name:        "Omelette",
		Image:       "https://cdn.example.com/recipes/images/old.png",
		Text:        "Whisk and fry.",
		CookingTime: 10,
		Tags:        []entities.Tag{*f.lunch},
	}
	for in, amount := range amounts {
		recipe.Ingredients = append(recipe.Ingredients, entities.IngredientInRecipe{
			RecipeID:     id,
			IngredientID: in.ID,
			Amount:       amount,
			Ingredient:   in,
		})
	}
	return recipe
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func owner(f *fixture) domain.Identity {
	return domain.Identity{UserID: f.author.ID, Role: domain.RoleUser, Authenticated: true}
}

func (f *fixture) request(t *testing.T, amounts map[*entities.Ingredient]int) domain.RecipeRequest {
	req := domain.RecipeRequest{
		Tags:        []string{f.lunch.ID.String()},
		Image:       pngDataURI(t),
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		CookingTime: 10,
	}
	for in, amount := range amounts {
		req.Ingredients = append(req.Ingredients, domain.IngredientAmountRequest{ID: in.ID.String(), Amount: amount})
	}
	return req
}

func TestCreateRecipe_Anonymous(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.svc.CreateRecipe(context.Background(), domain.Anonymous(), f.request(t, map[*entities.Ingredient]int{f.egg: 2}))
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	f.repo.AssertNotCalled(t, "CreateRecipe", mock.Anything, mock.Anything)
	f.s3.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRecipe_Success(t *testing.T) {
	f := newFixture(nil, nil)
	var created *entities.Recipe

	f.s3.On("UploadFile", mock.Anything, mock.Anything, storage.FolderRecipeImages).Return("recipes/images/new.png", nil)
	f.repo.On("CreateRecipe", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entities.Recipe)
	}).Return(nil)
	f.repo.On("GetRecipeByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound).Maybe()

	req := f.request(t, map[*entities.Ingredient]int{f.egg: 2})
	_, _ = f.svc.CreateRecipe(context.Background(), owner(f), req)

	require.NotNil(t, created)
	assert.Equal(t, f.author.ID, created.AuthorID)
	assert.Equal(t, "https://cdn.example.com/recipes/images/new.png", created.Image)
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, f.egg.ID, created.Ingredients[0].IngredientID)
	assert.Equal(t, 2, created.Ingredients[0].Amount)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, f.lunch.ID, created.Tags[0].ID)
}

func TestCreateRecipe_ReturnsHydratedRecipe(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()

	f.s3.On("UploadFile", mock.Anything, mock.Anything, storage.FolderRecipeImages).Return("recipes/images/new.png", nil)
	f.repo.On("CreateRecipe", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Recipe).ID = id
	}).Return(nil)
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).
		Return(f.stored(id, map[*entities.Ingredient]int{f.egg: 2}), nil)

	recipe, err := f.svc.CreateRecipe(context.Background(), owner(f), f.request(t, map[*entities.Ingredient]int{f.egg: 2}))
	require.NoError(t, err)
	assert.Equal(t, id.String(), recipe.ID)
	assert.Equal(t, "chef", recipe.Author.Username)
	assert.False(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "egg", recipe.Ingredients[0].Name)
}

func TestCreateRecipe_UnknownIngredient(t *testing.T) {
	f := newFixture(nil, nil)
	req := f.request(t, map[*entities.Ingredient]int{f.egg: 2})
	req.Ingredients = append(req.Ingredients, domain.IngredientAmountRequest{ID: uuid.NewString(), Amount: 1})

	_, err := f.svc.CreateRecipe(context.Background(), owner(f), req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")
	f.s3.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRecipe_UnknownTag(t *testing.T) {
	f := newFixture(nil, nil)
	req := f.request(t, map[*entities.Ingredient]int{f.egg: 2})
	req.Tags = []string{uuid.NewString()}

	_, err := f.svc.CreateRecipe(context.Background(), owner(f), req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "tags")
}

func TestCreateRecipe_InvalidImage(t *testing.T) {
	f := newFixture(nil, nil)
	req := f.request(t, map[*entities.Ingredient]int{f.egg: 2})
	req.Image = "data:image/gif;base64,R0lGODlhAQABAAAAACw="

	_, err := f.svc.CreateRecipe(context.Background(), owner(f), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRecipe_StorageFailureRemovesUpload(t *testing.T) {
	f := newFixture(nil, nil)
	f.s3.On("UploadFile", mock.Anything, mock.Anything, storage.FolderRecipeImages).Return("recipes/images/new.png", nil)
	f.s3.On("DeleteFile", mock.Anything, "recipes/images/new.png").Return(nil)
	f.repo.On("CreateRecipe", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := f.svc.CreateRecipe(context.Background(), owner(f), f.request(t, map[*entities.Ingredient]int{f.egg: 2}))
	require.Error(t, err)
	f.s3.AssertExpectations(t)
}

func TestValidateRecipeRequest(t *testing.T) {
	egg := uuid.NewString()
	milk := uuid.NewString()
	lunch := uuid.NewString()
	base := func() domain.RecipeRequest {
		return domain.RecipeRequest{
			Ingredients: []domain.IngredientAmountRequest{{ID: egg, Amount: 2}, {ID: milk, Amount: 1}},
			Tags:        []string{lunch},
			Image:       "data:image/png;base64,AAAA",
			Name:        "Omelette",
			Text:        "Whisk and fry.",
			CookingTime: 10,
		}
	}

	tests := []struct {
		name          string
		mutate        func(*domain.RecipeRequest)
		imageRequired bool
		field         string
	}{
		{"no ingredients", func(r *domain.RecipeRequest) { r.Ingredients = nil }, true, "non_field_errors"},
		{"no tags", func(r *domain.RecipeRequest) { r.Tags = []string{} }, true, "non_field_errors"},
		{"duplicate ingredients", func(r *domain.RecipeRequest) {
			r.Ingredients = append(r.Ingredients, domain.IngredientAmountRequest{ID: egg, Amount: 5})
		}, true, "ingredients"},
		{"duplicate tags", func(r *domain.RecipeRequest) { r.Tags = []string{lunch, lunch} }, true, "tags"},
		{"zero amount", func(r *domain.RecipeRequest) { r.Ingredients[0].Amount = 0 }, true, "ingredients[0].amount"},
		{"amount too big", func(r *domain.RecipeRequest) { r.Ingredients[1].Amount = 32001 }, true, "ingredients[1].amount"},
		{"zero cooking time", func(r *domain.RecipeRequest) { r.CookingTime = 0 }, true, "cooking_time"},
		{"long name", func(r *domain.RecipeRequest) { r.Name = strings.Repeat("a", 129) }, true, "name"},
		{"missing image on create", func(r *domain.RecipeRequest) { r.Image = "" }, true, "image"},
		{"bad tag id", func(r *domain.RecipeRequest) { r.Tags = []string{"breakfast"} }, true, "tags[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			_, err := ValidateRecipeRequest(req, tt.imageRequired)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	t.Run("image optional on update", func(t *testing.T) {
		req := base()
		req.Image = ""
		parsed, err := ValidateRecipeRequest(req, false)
		require.NoError(t, err)
		assert.Len(t, parsed.Amounts, 2)
		assert.Len(t, parsed.TagIDs, 1)
	})

	t.Run("boundaries accepted", func(t *testing.T) {
		req := base()
		req.CookingTime = 32000
		req.Ingredients[0].Amount = 1
		req.Ingredients[1].Amount = 32000
		req.Name = strings.Repeat("a", 128)
		_, err := ValidateRecipeRequest(req, true)
		require.NoError(t, err)
	})
}

func TestUpdateRecipe_ReplacesIngredientSet(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	before := f.stored(id, map[*entities.Ingredient]int{f.egg: 2})
	after := f.stored(id, map[*entities.Ingredient]int{f.egg: 3, f.milk: 1})

	var updated *entities.Recipe
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(before, nil).Once()
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(after, nil).Once()
	f.repo.On("UpdateRecipe", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*entities.Recipe)
	}).Return(nil)

	req := f.request(t, map[*entities.Ingredient]int{f.egg: 3, f.milk: 1})
	req.Image = ""
	recipe, err := f.svc.UpdateRecipe(context.Background(), owner(f), id.String(), req)
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.Equal(t, before.Image, updated.Image)
	amounts := map[uuid.UUID]int{}
	for _, in := range updated.Ingredients {
		amounts[in.IngredientID] = in.Amount
	}
	assert.Equal(t, map[uuid.UUID]int{f.egg.ID: 3, f.milk.ID: 1}, amounts)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "egg", recipe.Ingredients[0].Name)
	assert.Equal(t, 3, recipe.Ingredients[0].Amount)
	assert.Equal(t, "milk", recipe.Ingredients[1].Name)
	f.s3.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRecipe_NewImageReplacesOld(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	stored := f.stored(id, map[*entities.Ingredient]int{f.egg: 2})

	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(stored, nil)
	f.repo.On("UpdateRecipe", mock.Anything, mock.MatchedBy(func(r *entities.Recipe) bool {
		return r.Image == "https://cdn.example.com/recipes/images/new.png"
	})).Return(nil)
	f.s3.On("UploadFile", mock.Anything, mock.Anything, storage.FolderRecipeImages).Return("recipes/images/new.png", nil)
	f.s3.On("DeleteFile", mock.Anything, "recipes/images/old.png").Return(nil)

	_, err := f.svc.UpdateRecipe(context.Background(), owner(f), id.String(), f.request(t, map[*entities.Ingredient]int{f.egg: 2}))
	require.NoError(t, err)
	f.s3.AssertExpectations(t)
}

func TestUpdateRecipe_Permissions(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(f.stored(id, map[*entities.Ingredient]int{f.egg: 2}), nil)
	f.repo.On("UpdateRecipe", mock.Anything, mock.Anything).Return(nil)

	req := f.request(t, map[*entities.Ingredient]int{f.egg: 2})
	req.Image = ""

	_, err := f.svc.UpdateRecipe(context.Background(), domain.Anonymous(), id.String(), req)
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	stranger := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser, Authenticated: true}
	_, err = f.svc.UpdateRecipe(context.Background(), stranger, id.String(), req)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	f.repo.AssertNotCalled(t, "UpdateRecipe", mock.Anything, mock.Anything)

	admin := domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin, Authenticated: true}
	_, err = f.svc.UpdateRecipe(context.Background(), admin, id.String(), req)
	require.NoError(t, err)
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.UpdateRecipe(context.Background(), owner(f), id.String(), f.request(t, map[*entities.Ingredient]int{f.egg: 2}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(f.stored(id, map[*entities.Ingredient]int{f.egg: 2}), nil)
	f.repo.On("DeleteRecipe", mock.Anything, id).Return(nil)
	f.s3.On("DeleteFile", mock.Anything, "recipes/images/old.png").Return(nil)

	stranger := domain.Identity{UserID: uuid.New(), Role: domain.RoleUser, Authenticated: true}
	assert.ErrorIs(t, f.svc.DeleteRecipe(context.Background(), stranger, id.String()), domain.ErrPermissionDenied)
	f.repo.AssertNotCalled(t, "DeleteRecipe", mock.Anything, mock.Anything)

	require.NoError(t, f.svc.DeleteRecipe(context.Background(), owner(f), id.String()))
	f.repo.AssertCalled(t, "DeleteRecipe", mock.Anything, id)
	f.s3.AssertExpectations(t)
}

func TestGetRecipe_InvalidID(t *testing.T) {
	f := newFixture(nil, nil)
	_, err := f.svc.GetRecipe(context.Background(), domain.Anonymous(), "42")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipes_Flags(t *testing.T) {
	viewer := uuid.New()
	favored := uuid.New()
	carted := uuid.New()

	f := newFixture(
		relationSet{
			entities.RelationFavorite:     {favored: true},
			entities.RelationShoppingCart: {carted: true},
		},
		nil,
	)
	f.svc.subscriptionChecker = subscriptionSet{f.author.ID: true}

	recipes := []*entities.Recipe{
		f.stored(favored, map[*entities.Ingredient]int{f.egg: 1}),
		f.stored(carted, map[*entities.Ingredient]int{f.milk: 1}),
	}
	f.repo.On("GetRecipes", mock.Anything, mock.Anything, 0, 6).Return(recipes, int64(2), nil)

	identity := domain.Identity{UserID: viewer, Role: domain.RoleUser, Authenticated: true}
	page, err := f.svc.GetRecipes(context.Background(), identity, domain.RecipeFilter{}, 1, 6)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.True(t, page.Results[0].IsFavorited)
	assert.False(t, page.Results[0].IsInShoppingCart)
	assert.False(t, page.Results[1].IsFavorited)
	assert.True(t, page.Results[1].IsInShoppingCart)
	assert.True(t, page.Results[0].Author.IsSubscribed)

	page, err = f.svc.GetRecipes(context.Background(), domain.Anonymous(), domain.RecipeFilter{}, 1, 6)
	require.NoError(t, err)
	assert.False(t, page.Results[0].IsFavorited)
	assert.False(t, page.Results[1].IsInShoppingCart)
	assert.False(t, page.Results[0].Author.IsSubscribed)
}

func TestGetRecipes_Filters(t *testing.T) {
	f := newFixture(nil, nil)
	viewer := uuid.New()
	author := uuid.New()

	f.repo.On("GetRecipes", mock.Anything, RecipeQuery{
		AuthorID:    &author,
		TagSlugs:    []string{"lunch", "dinner"},
		FavoritedBy: &viewer,
	}, 6, 6).Return([]*entities.Recipe{}, int64(0), nil).Once()
	f.repo.On("GetRecipes", mock.Anything, RecipeQuery{}, 0, 6).Return([]*entities.Recipe{}, int64(0), nil).Once()

	identity := domain.Identity{UserID: viewer, Role: domain.RoleUser, Authenticated: true}
	_, err := f.svc.GetRecipes(context.Background(), identity, domain.RecipeFilter{
		AuthorID:    author.String(),
		TagSlugs:    []string{"lunch", " ", "dinner"},
		IsFavorited: true,
	}, 2, 6)
	require.NoError(t, err)

	// anonymous callers cannot filter by their own lists
	_, err = f.svc.GetRecipes(context.Background(), domain.Anonymous(), domain.RecipeFilter{
		IsFavorited:      true,
		IsInShoppingCart: true,
	}, 1, 6)
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestGetRecipes_InvalidAuthorIsEmpty(t *testing.T) {
	f := newFixture(nil, nil)
	page, err := f.svc.GetRecipes(context.Background(), domain.Anonymous(), domain.RecipeFilter{AuthorID: "nobody"}, 1, 6)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, int64(0), page.Pagination.Total)
	f.repo.AssertNotCalled(t, "GetRecipes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetShortLink(t *testing.T) {
	f := newFixture(nil, nil)
	id := uuid.New()
	f.repo.On("GetRecipeByID", mock.Anything, id.String()).Return(f.stored(id, nil), nil)

	link, err := f.svc.GetShortLink(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "https://foodgram.example/recipes/"+id.String()+"/", link.ShortLink)
}
