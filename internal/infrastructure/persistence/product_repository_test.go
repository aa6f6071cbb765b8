package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salon/backend/internal/domain/catalog"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

func intPtr(v int) *int {
	return &v
}

func mustBuildProduct(t *testing.T) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(
		"Argan Oil Shampoo",
		"Sulfate-free shampoo for color-treated hair.",
		valueobject.MustNewPrice("24.00"),
		catalog.CategoryHairCare,
		catalog.ProductTypePhysical,
		catalog.MustNewSKU("HC-002"),
		nil,
		intPtr(30),
		intPtr(5),
	)
	require.NoError(t, err)
	return product
}

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productColumns() []string {
	return []string{
		"id", "version", "name", "description", "price", "category", "type", "sku",
		"status", "duration_minutes", "stock_level", "low_stock_threshold",
	}
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		duration := 45

		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, 1, "Color Refresh", "Root touch-up and gloss treatment.",
				"75.00", "COLORING", "SERVICE", "CO-001", "active", &duration, nil, nil)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Color Refresh", product.Name)
		assert.Equal(t, "CO-001", product.SKU.String())
		assert.Equal(t, catalog.ProductTypeService, product.Type)
		require.NotNil(t, product.DurationMinutes)
		assert.Equal(t, 45, *product.DurationMinutes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("uppercases the SKU before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, 1, "Argan Oil Shampoo", "Sulfate-free shampoo for color-treated hair.",
				"24.00", "HAIR_CARE", "PHYSICAL_PRODUCT", "HC-002", "active", nil, intPtr(30), intPtr(5))

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("HC-002", 1).
			WillReturnRows(rows)

		product, err := repo.FindBySKU(context.Background(), "hc-002")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "HC-002", product.SKU.String())
		require.NotNil(t, product.StockLevel)
		assert.Equal(t, 30, *product.StockLevel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for empty SKU", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := repo.FindBySKU(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestGormProductRepository_FindLowStock(t *testing.T) {
	t.Run("filters on stock threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE status = \$1 AND \(stock_level IS NOT NULL AND low_stock_threshold IS NOT NULL\) AND stock_level <= low_stock_threshold`).
			WithArgs(catalog.ProductStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 AND \(stock_level IS NOT NULL AND low_stock_threshold IS NOT NULL\) AND stock_level <= low_stock_threshold ORDER BY name ASC LIMIT .*`).
			WithArgs(catalog.ProductStatusActive, 20).
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow(uuid.New(), 1, "Argan Oil Shampoo", "Sulfate-free shampoo for color-treated hair.",
					"24.00", "HAIR_CARE", "PHYSICAL_PRODUCT", "HC-002", "active", nil, intPtr(3), intPtr(5)))

		filter := shared.Filter{Page: 1, PageSize: 20}
		page, err := repo.FindLowStock(context.Background(), filter)

		assert.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Argan Oil Shampoo", page.Items[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_NextSKUSequence(t *testing.T) {
	t.Run("increments an existing sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "sku_sequences" WHERE category = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(catalog.CategoryHairCare, 1).
			WillReturnRows(sqlmock.NewRows([]string{"category", "last_value"}).AddRow("HAIR_CARE", 7))
		mock.ExpectExec(`UPDATE "sku_sequences" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		next, err := repo.NextSKUSequence(context.Background(), catalog.CategoryHairCare)

		assert.NoError(t, err)
		assert.Equal(t, 8, next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts a new sequence at one", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "sku_sequences" WHERE category = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(catalog.CategoryMassage, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "sku_sequences"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		next, err := repo.NextSKUSequence(context.Background(), catalog.CategoryMassage)

		assert.NoError(t, err)
		assert.Equal(t, 1, next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Save(t *testing.T) {
	t.Run("maps duplicate SKU to conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := mustBuildProduct(t)

		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err := repo.Save(context.Background(), product)

		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})
}

func TestGormProductRepository_ExistsBySKU(t *testing.T) {
	t.Run("returns false for empty SKU", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsBySKU(context.Background(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("returns true when SKU exists", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE sku = \$1`).
			WithArgs("HC-002").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySKU(context.Background(), "hc-002")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ProductRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		var _ catalog.ProductRepository = repo
	})
}
