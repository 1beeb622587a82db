package seed

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ingredientRecord struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	tagRecord struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)

// Seed loads the catalogs from dir/ingredients.json and dir/tags.json.
// Existing rows are left alone, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, dir string) error {
	ingredients, err := LoadIngredients(filepath.Join(dir, "ingredients.json"))
	if err != nil {
		return err
	}
	n, err := ingredient.NewIngredientRepository(db).CreateIngredients(ctx, ingredients)
	if err != nil {
		return fmt.Errorf("seed ingredients: %w", err)
	}
	log.Infof("Seeded %d of %d ingredients", n, len(ingredients))

	tags, err := LoadTags(filepath.Join(dir, "tags.json"))
	if err != nil {
		return err
	}
	n, err = tag.NewTagRepository(db).CreateTags(ctx, tags)
	if err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	log.Infof("Seeded %d of %d tags", n, len(tags))
	return nil
}

func LoadIngredients(path string) ([]*entities.Ingredient, error) {
	var records []ingredientRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}

	ingredients := make([]*entities.Ingredient, 0, len(records))
	for i, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" || len(name) > domain.MaxIngredientNameLen {
			return nil, fmt.Errorf("%s: record %d: invalid name %q", path, i, r.Name)
		}
		if !domain.IsMeasurementUnit(r.MeasurementUnit) {
			return nil, fmt.Errorf("%s: record %d: unknown measurement unit %q", path, i, r.MeasurementUnit)
		}
		ingredients = append(ingredients, &entities.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: r.MeasurementUnit,
		})
	}
	return ingredients, nil
}

func LoadTags(path string) ([]*entities.Tag, error) {
	var records []tagRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}

	tags := make([]*entities.Tag, 0, len(records))
	for i, r := range records {
		if r.Name == "" || r.Slug == "" || len(r.Name) > domain.MaxTagNameLen || len(r.Slug) > domain.MaxTagSlugLen {
			return nil, fmt.Errorf("%s: record %d: invalid tag %q/%q", path, i, r.Name, r.Slug)
		}
		tags = append(tags, &entities.Tag{
			ID:   uuid.New(),
			Name: r.Name,
			Slug: r.Slug,
		})
	}
	return tags, nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// CreateAdmin registers an admin from "email:username:password".
func CreateAdmin(ctx context.Context, db *gorm.DB, credentials string) error {
	parts := strings.SplitN(credentials, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return fmt.Errorf("admin must be given as email:username:password")
	}

	svc := user.NewUserService(user.NewUserRepository(db), nil, nil, nil)
	res, err := svc.CreateAdmin(ctx, domain.RegisterRequest{
		Email:     parts[0],
		Username:  parts[1],
		FirstName: parts[1],
		LastName:  "admin",
		Password:  parts[2],
	})
	if err != nil {
		return err
	}
	log.Infof("Created admin %s (%s)", res.Username, res.ID)
	return nil
}
