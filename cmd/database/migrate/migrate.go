package migration

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() is the default of every primary key
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"auth token", &entities.AuthToken{}},
		{"ingredient", &entities.Ingredient{}},
		{"tag", &entities.Tag{}},
		{"recipe", &entities.Recipe{}},
		{"ingredient in recipe", &entities.IngredientInRecipe{}},
		{"user recipe relation", &entities.UserRecipeRelation{}},
		{"subscription", &entities.Subscription{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	if err := ensureMeasurementUnitCheck(db); err != nil {
		log.Errorf("Error adding measurement unit check: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}

const measurementUnitConstraint = "chk_ingredients_measurement_unit"

// MeasurementUnitCheck is the CHECK expression limiting ingredients to
// domain.MeasurementUnits.
func MeasurementUnitCheck() string {
	quoted := make([]string, 0, len(domain.MeasurementUnits))
	for _, unit := range domain.MeasurementUnits {
		quoted = append(quoted, "'"+strings.ReplaceAll(unit, "'", "''")+"'")
	}
	return "measurement_unit IN (" + strings.Join(quoted, ", ") + ")"
}

// ensureMeasurementUnitCheck recreates the constraint on every run so it
// follows the unit list.
func ensureMeasurementUnitCheck(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("ALTER TABLE ingredients DROP CONSTRAINT IF EXISTS " + measurementUnitConstraint).Error; err != nil {
			return err
		}
		return tx.Exec("ALTER TABLE ingredients ADD CONSTRAINT " + measurementUnitConstraint +
			" CHECK (" + MeasurementUnitCheck() + ")").Error
	})
}
