package domain

const ShoppingListFileName = "shopping_list.txt"

type (
	// CartIngredient is one ingredient row of one recipe in a shopping cart.
	CartIngredient struct {
		Name            string
		MeasurementUnit string
		Amount          int
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Total           int64  `json:"total"`
	}
)
