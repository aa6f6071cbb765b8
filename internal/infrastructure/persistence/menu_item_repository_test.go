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

	"github.com/salon/backend/internal/domain/menu"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

func newMockMenuItemRepository(t *testing.T) (*GormMenuItemRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormMenuItemRepository(gormDB), mock, mockDB
}

func menuItemColumns() []string {
	return []string{
		"id", "version", "name", "description", "category", "duration_minutes", "price",
		"is_package", "included_services", "requirements", "benefits",
		"advance_booking_required", "advance_booking_days", "valid_from", "valid_to",
		"display_order", "tags", "status",
	}
}

func TestGormMenuItemRepository_FindByID(t *testing.T) {
	t.Run("finds item and decodes JSON lists", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		rows := sqlmock.NewRows(menuItemColumns()).
			AddRow(itemID, 1, "Bridal Glow Package", "Full bridal treatment with trial session included.",
				"BRIDAL_PACKAGES", 180, "350.00",
				true, `["Hair Styling","Makeup","Manicure"]`, `["Trial session booked"]`, `["Free touch-up kit"]`,
				true, 7, nil, nil,
				3, `["bridal","premium"]`, "active")

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Bridal Glow Package", item.Name)
		assert.Equal(t, menu.MenuCategoryBridalPackages, item.Category)
		assert.Equal(t, 180, item.Duration.Minutes())
		assert.True(t, item.IsPackage)
		assert.Equal(t, []string{"Hair Styling", "Makeup", "Manicure"}, item.IncludedServices)
		assert.Equal(t, []string{"bridal", "premium"}, item.Tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent item", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormMenuItemRepository_FindVisible(t *testing.T) {
	t.Run("returns active items ordered by display order", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows(menuItemColumns()).
			AddRow(uuid.New(), 1, "Classic Haircut", "A precision cut tailored to your style.",
				"HAIRCUTS", 45, "40.00", false, "[]", "[]", "[]", false, 0, nil, nil, 1, "[]", "active").
			AddRow(uuid.New(), 1, "Deep Tissue Massage", "A full-hour massage for tension relief.",
				"MASSAGE", 60, "85.00", false, "[]", "[]", "[]", false, 0, nil, nil, 2, "[]", "active")

		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE status = \$1 ORDER BY display_order ASC`).
			WithArgs(menu.MenuItemStatusActive).
			WillReturnRows(rows)

		items, err := repo.FindVisible(context.Background())

		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Classic Haircut", items[0].Name)
		assert.Equal(t, 1, items[0].DisplayOrder)
		assert.Equal(t, "Deep Tissue Massage", items[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMenuItemRepository_FindByCategory(t *testing.T) {
	t.Run("filters on category with pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "menu_items" WHERE category = \$1`).
			WithArgs(menu.MenuCategoryNails).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE category = \$1 ORDER BY display_order ASC LIMIT .*`).
			WithArgs(menu.MenuCategoryNails, 20).
			WillReturnRows(sqlmock.NewRows(menuItemColumns()).
				AddRow(uuid.New(), 1, "Gel Manicure", "Long-lasting gel manicure with nail prep.",
					"NAILS", 45, "55.00", false, "[]", "[]", "[]", false, 0, nil, nil, 5, "[]", "active"))

		filter := shared.Filter{Page: 1, PageSize: 20}
		page, err := repo.FindByCategory(context.Background(), menu.MenuCategoryNails, filter)

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(1), page.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMenuItemRepository_Save(t *testing.T) {
	t.Run("maps duplicate display order to conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		item, err := menu.NewMenuItem(
			"Classic Haircut",
			"A precision cut tailored to your style.",
			menu.MenuCategoryHaircuts,
			menu.MustNewServiceDuration(45),
			valueobject.MustNewPrice("40.00"),
			false,
			nil,
			1,
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "menu_items" SET`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), item)

		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))
	})
}

func TestGormMenuItemRepository_ExistsByDisplayOrder(t *testing.T) {
	t.Run("checks display order across all items", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "menu_items" WHERE display_order = \$1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByDisplayOrder(context.Background(), 3, uuid.Nil)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the given ID", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "menu_items" WHERE display_order = \$1 AND id <> \$2`).
			WithArgs(3, excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByDisplayOrder(context.Background(), 3, excludeID)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMenuItemRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "menu_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormMenuItemRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements MenuItemRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockMenuItemRepository(t)
		defer mockDB.Close()

		var _ menu.MenuItemRepository = repo
	})
}
