package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventario/internal/models"

	"gorm.io/gorm"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository, used
// when the service is configured with a sqlite or postgres backend instead
// of the default in-memory store.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// Seed inserts the given products unless the table already has rows, so a
// restart against a persistent database does not duplicate the seed set.
func (r *GORMCatalogRepository) Seed(products []models.Product) error {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := r.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

// List retrieves all products ordered by id.
func (r *GORMCatalogRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its id.
func (r *GORMCatalogRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create validates the draft and inserts a new product. The id is assigned
// inside the transaction as MAX(id)+1, so ids stay strictly increasing even
// after deletes; sqlite rowid reuse would otherwise break that.
func (r *GORMCatalogRepository) Create(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	if err := draft.ValidateForCreate(); err != nil {
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	product := productFromDraft(draft)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int
		if err := tx.Model(&models.Product{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return fmt.Errorf("failed to read max product id: %w", err)
		}
		product.ID = maxID + 1
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update merges the draft over the stored record inside a transaction and
// saves the result. Fields absent from the draft are preserved.
func (r *GORMCatalogRepository) Update(ctx context.Context, id int, draft models.ProductDraft) (*models.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrProductNotFound
			}
			return fmt.Errorf("failed to get product %d: %w", id, err)
		}
		draft.ApplyTo(&product)
		product.ID = id
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product by its id.
func (r *GORMCatalogRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
