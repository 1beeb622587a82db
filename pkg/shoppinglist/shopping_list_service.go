package shoppinglist

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/pkg/access"
	"context"
	"fmt"
	"sort"
	"strings"
)

const header = "Shopping list:"

type (
	ShoppingListService interface {
		GetShoppingList(ctx context.Context, identity domain.Identity) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, identity domain.Identity) ([]byte, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository) ShoppingListService {
	return &shoppingListService{
		shoppingListRepository: shoppingListRepository,
	}
}

func (s *shoppingListService) GetShoppingList(ctx context.Context, identity domain.Identity) ([]domain.ShoppingListItem, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return nil, err
	}

	rows, err := s.shoppingListRepository.GetCartIngredients(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

func (s *shoppingListService) DownloadShoppingList(ctx context.Context, identity domain.Identity) ([]byte, error) {
	items, err := s.GetShoppingList(ctx, identity)
	if err != nil {
		return nil, err
	}
	metrics.ShoppingListDownloads.Inc()

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, line := range Render(items) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

type itemKey struct {
	name, unit string
}

// Aggregate sums amounts per (name, unit) and sorts by name, then unit. The
// result does not depend on the order of rows.
func Aggregate(rows []domain.CartIngredient) []domain.ShoppingListItem {
	totals := make(map[itemKey]int64, len(rows))
	for _, row := range rows {
		totals[itemKey{row.Name, row.MeasurementUnit}] += int64(row.Amount)
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Total:           total,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

func Render(items []domain.ShoppingListItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %d %s", item.Name, item.Total, item.MeasurementUnit))
	}
	return lines
}
