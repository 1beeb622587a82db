package domain

import "slices"

const (
	MaxTagNameLen        = 64
	MaxTagSlugLen        = 128
	MaxIngredientNameLen = 128
)

const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitTablespoon = "tbsp"
	UnitTeaspoon   = "tsp"
	UnitPieces     = "pcs"
	UnitPiece      = "piece"
	UnitDrop       = "drop"
	UnitPinch      = "pinch"
	UnitToTaste    = "to taste"
)

var MeasurementUnits = []string{
	UnitGram,
	UnitKilogram,
	UnitMilliliter,
	UnitLiter,
	UnitTablespoon,
	UnitTeaspoon,
	UnitPieces,
	UnitPiece,
	UnitDrop,
	UnitPinch,
	UnitToTaste,
}

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetTag         = "success get tag"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"
	MessageFailedGetTags        = "failed to get tags"
	MessageFailedGetTag         = "failed to get tag"
)

func IsMeasurementUnit(unit string) bool {
	return slices.Contains(MeasurementUnits, unit)
}

type (
	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	Tag struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)
