package repositories_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"productstore/internal/models"
	"productstore/internal/repositories"
)

// newTestRepo opens a fresh in-memory SQLite database for each test.
func newTestRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// Every new connection to :memory: gets its own database, so pin the
	// pool to a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repositories.NewGORMProductRepository(db)
}

func seedTestProducts(t *testing.T, repo repositories.ProductRepository) []models.Product {
	t.Helper()

	products := []models.Product{
		{Name: "Hat", Description: "A red fedora", Price: models.MustPrice("59.95"), Available: true, Category: models.CategoryCloths},
		{Name: "Shoes", Description: "Blue shoes", Price: models.MustPrice("120.50"), Available: false, Category: models.CategoryCloths},
		{Name: "Big Mac", Description: "1/4 lb burger", Price: models.MustPrice("5.99"), Available: true, Category: models.CategoryFood},
		{Name: "Sheets", Description: "Full bed sheets", Price: models.MustPrice("87.00"), Available: true, Category: models.CategoryHousewares},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			t.Fatalf("failed to seed product %s: %v", products[i].Name, err)
		}
	}
	return products
}

func TestGORMProductRepository_CreateAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	product := &models.Product{Name: "Hat", Price: models.MustPrice("59.95"), Available: true, Category: models.CategoryCloths}
	assert.NoError(t, repo.Create(product))
	assert.NotZero(t, product.ID)

	second := &models.Product{Name: "Hat", Price: models.MustPrice("59.95"), Available: true, Category: models.CategoryCloths}
	assert.NoError(t, repo.Create(second))
	assert.NotEqual(t, product.ID, second.ID, "duplicate names are permitted but ids must be unique")
}

func TestGORMProductRepository_FindByID(t *testing.T) {
	repo := newTestRepo(t)
	seeded := seedTestProducts(t, repo)

	found, err := repo.FindByID(seeded[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, seeded[0].Name, found.Name)
	assert.Equal(t, seeded[0].Description, found.Description)
	assert.True(t, seeded[0].Price.Equal(found.Price.Decimal))
	assert.Equal(t, seeded[0].Available, found.Available)
	assert.Equal(t, seeded[0].Category, found.Category)

	_, err = repo.FindByID(99999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_FindAll(t *testing.T) {
	repo := newTestRepo(t)

	// Empty table yields an empty, non-nil slice
	products, err := repo.FindAll()
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	seedTestProducts(t, repo)
	products, err = repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestGORMProductRepository_FindByName(t *testing.T) {
	repo := newTestRepo(t)
	seedTestProducts(t, repo)

	products, err := repo.FindByName("Hat")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Hat", products[0].Name)

	// Exact match only
	products, err = repo.FindByName("hat")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductRepository_FindByCategory(t *testing.T) {
	repo := newTestRepo(t)
	seedTestProducts(t, repo)

	products, err := repo.FindByCategory(models.CategoryCloths)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, models.CategoryCloths, p.Category)
	}

	products, err = repo.FindByCategory(models.CategoryAutomotive)
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductRepository_FindByAvailability(t *testing.T) {
	repo := newTestRepo(t)
	seedTestProducts(t, repo)

	available, err := repo.FindByAvailability(true)
	assert.NoError(t, err)
	assert.Len(t, available, 3)

	unavailable, err := repo.FindByAvailability(false)
	assert.NoError(t, err)
	assert.Len(t, unavailable, 1)
	assert.Equal(t, "Shoes", unavailable[0].Name)
}

func TestGORMProductRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	seeded := seedTestProducts(t, repo)

	product := seeded[0]
	product.Name = "Fedora"
	product.Description = "Updated"
	product.Price = models.MustPrice("49.95")
	product.Available = false
	product.Category = models.CategoryHousewares
	assert.NoError(t, repo.Update(&product))

	found, err := repo.FindByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Fedora", found.Name)
	assert.Equal(t, "Updated", found.Description)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("49.95")))
	assert.False(t, found.Available)
	assert.Equal(t, models.CategoryHousewares, found.Category)

	missing := models.Product{ID: 99999, Name: "Ghost", Price: models.MustPrice("1.00"), Category: models.CategoryUnknown}
	assert.ErrorIs(t, repo.Update(&missing), repositories.ErrNotFound)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	seeded := seedTestProducts(t, repo)

	assert.NoError(t, repo.Delete(seeded[0].ID))

	_, err := repo.FindByID(seeded[0].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	products, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)

	// Deleting the same id again reports not found
	assert.ErrorIs(t, repo.Delete(seeded[0].ID), repositories.ErrNotFound)
}
