package database

import (
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-pos/internal/models"
	"pizza-pos/migrations"
)

func TestGetMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_sales.sql":      {Data: []byte("SELECT 2;")},
		"001_menu_items.sql": {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("docs")},
		"embed.go":           {Data: []byte("package migrations")},
	}

	files, err := getMigrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_menu_items.sql", "002_sales.sql"}, files)
}

func TestGetMigrationFiles_EmbeddedSchema(t *testing.T) {
	files, err := getMigrationFiles(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_menu_items.sql", "002_sales.sql"}, files)
}

func TestCentsConversion(t *testing.T) {
	tests := []struct {
		amount string
		cents  int64
	}{
		{"0", 0},
		{"0.01", 1},
		{"6.00", 600},
		{"22.00", 2200},
		{"1234.56", 123456},
	}

	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		assert.Equal(t, tt.cents, toCents(amount), tt.amount)
		assert.True(t, fromCents(tt.cents).Equal(amount), tt.amount)
	}
}

func TestSaleLines(t *testing.T) {
	order := models.NewOrder()
	pepperoni, _ := models.NewLineItem(models.MustMenuItem("Pepperoni", "8.00"), 2)
	margherita, _ := models.NewLineItem(models.MustMenuItem("Margherita", "6.00"), 1)
	order.AddItem(pepperoni)
	order.AddItem(margherita)

	tx := models.NewPaymentTransaction(order, models.CreditCard)
	rows := saleLines(tx)

	require.Len(t, rows, 2)
	assert.Equal(t, saleLine{Position: 1, Name: "Pepperoni", UnitPriceCents: 800, Quantity: 2, LineTotalCents: 1600}, rows[0])
	assert.Equal(t, saleLine{Position: 2, Name: "Margherita", UnitPriceCents: 600, Quantity: 1, LineTotalCents: 600}, rows[1])
}
