package repositories_test

import (
	"context"
	"testing"
	"time"

	"inventario/internal/models"
	"inventario/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededRepo() *repositories.MemoryCatalogRepository {
	return repositories.NewMemoryCatalogRepository(models.DefaultCatalog(), 0)
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func TestMemoryCatalog_ListReturnsSeedInOrder(t *testing.T) {
	repo := newSeededRepo()

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)
	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, "Zapatillas Running Pro", products[0].Name)
	assert.Equal(t, "RAQ-TEN-005", products[4].SKU)
}

func TestMemoryCatalog_ListIsDefensiveCopy(t *testing.T) {
	repo := newSeededRepo()

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	products[0].Name = "mutated"
	products[0].Stock = -99

	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zapatillas Running Pro", again[0].Name)
	assert.Equal(t, 15, again[0].Stock)
}

func TestMemoryCatalog_CreateAssignsNextID(t *testing.T) {
	repo := newSeededRepo()

	created, err := repo.Create(context.Background(), models.ProductDraft{
		Name:  strPtr("X"),
		Price: floatPtr(9.99),
		Stock: intPtr(1),
		SKU:   strPtr("X-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
	assert.Equal(t, models.DefaultImageURL, created.Image)
	assert.Equal(t, models.CategoryCalzado, created.Category)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestMemoryCatalog_CreateIDStrictlyGreaterAfterDelete(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 3))

	created, err := repo.Create(ctx, models.ProductDraft{
		Name:  strPtr("Nueva"),
		Price: floatPtr(1),
		Stock: intPtr(1),
		SKU:   strPtr("NUE-001"),
	})
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	for _, p := range products {
		if p.ID == created.ID {
			continue
		}
		assert.Greater(t, created.ID, p.ID)
	}
}

func TestMemoryCatalog_CreateMissingFields(t *testing.T) {
	repo := newSeededRepo()

	_, err := repo.Create(context.Background(), models.ProductDraft{
		Name: strPtr("Sin precio"),
	})
	require.Error(t, err)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"price", "stock", "sku"}, validationErr.Fields)

	// A failed create leaves the catalog unchanged.
	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestMemoryCatalog_RejectsNegativeNumbers(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	var validationErr *models.ValidationError

	_, err := repo.Create(ctx, models.ProductDraft{
		Name:  strPtr("Pelota de Playa"),
		Price: floatPtr(-5),
		Stock: intPtr(-3),
		SKU:   strPtr("PEL-PLA-006"),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"price", "stock"}, validationErr.Fields)

	_, err = repo.Update(ctx, 1, models.ProductDraft{Stock: intPtr(-1)})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "stock")

	// Nothing was stored or changed.
	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCatalog(), products)
}

func TestMemoryCatalog_UpdateMergesFields(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	before, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, 2, models.ProductDraft{Stock: intPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Category, updated.Category)
	assert.Equal(t, before.Price, updated.Price)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.SKU, updated.SKU)
	assert.Equal(t, before.Image, updated.Image)
}

func TestMemoryCatalog_UpdateUnknownID(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	_, err := repo.Update(ctx, 999, models.ProductDraft{Name: strPtr("Y")})
	assert.ErrorIs(t, err, models.ErrProductNotFound)

	// The catalog is unchanged after the failed update.
	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCatalog(), products)
}

func TestMemoryCatalog_DeleteTwiceFails(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 4))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)
	for _, p := range products {
		assert.NotEqual(t, 4, p.ID)
	}

	err = repo.Delete(ctx, 4)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestMemoryCatalog_GetByIDReturnsCopy(t *testing.T) {
	repo := newSeededRepo()
	ctx := context.Background()

	p, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	p.Name = "mutated"

	again, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Zapatillas Running Pro", again.Name)
}

func TestMemoryCatalog_LatencyRespectsContext(t *testing.T) {
	repo := repositories.NewMemoryCatalogRepository(models.DefaultCatalog(), 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryCatalog_LatencyDelaysOperations(t *testing.T) {
	repo := repositories.NewMemoryCatalogRepository(models.DefaultCatalog(), 30*time.Millisecond)

	start := time.Now()
	_, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
