package entities

import "github.com/google/uuid"

type Ingredient struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	// limited to domain.MeasurementUnits by a CHECK added in migration
	MeasurementUnit string `gorm:"size:20;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Slug string    `gorm:"size:128;not null;uniqueIndex" json:"slug"`
}
