package database

import (
	"context"
	"fmt"

	"pizza-pos/internal/models"
)

// LoadCatalog reads the active menu from menu_items in display order
func (db *DB) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	rows, err := db.Query(ctx, SelectMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var name string
		var priceCents int64
		if err := rows.Scan(&name, &priceCents); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}

		item, err := models.NewMenuItem(name, fromCents(priceCents))
		if err != nil {
			return nil, fmt.Errorf("failed to load menu item %q: %w", name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("menu_items has no active rows")
	}

	return models.NewCatalog(items), nil
}
