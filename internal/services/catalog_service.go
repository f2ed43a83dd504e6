package services

import (
	"context"
	"log"

	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/pkg/events"
)

// CatalogService handles business logic for the product catalog: listing,
// filtered search, and the create/update/delete mutations. Every mutation
// either fully succeeds or leaves the catalog unchanged; on success an
// inventory event is published when a broker is configured.
type CatalogService struct {
	repo     repositories.CatalogRepository
	mqClient *events.Client // nil when no broker is configured
}

// NewCatalogService creates a new CatalogService. mqClient may be nil, in
// which case event publication is skipped.
func NewCatalogService(repo repositories.CatalogRepository, mqClient *events.Client) *CatalogService {
	return &CatalogService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProducts retrieves the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

// SearchProducts retrieves the catalog subset matching the filter criteria,
// in catalog order.
func (s *CatalogService) SearchProducts(ctx context.Context, criteria FilterCriteria) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, criteria), nil
}

// GetProductByID retrieves a single product by its id.
func (s *CatalogService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product from the draft.
func (s *CatalogService) CreateProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	product, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.publish("product.created", product)
	return product, nil
}

// UpdateProduct merges the draft over the product with the given id.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, draft models.ProductDraft) (*models.Product, error) {
	product, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	s.publish("product.updated", product)
	return product, nil
}

// DeleteProduct deletes a product by its id.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("product.deleted", &models.Product{ID: id})
	return nil
}

// publish sends an inventory event for the product. Publication is best
// effort: a broker failure is logged, never surfaced to the caller, and the
// catalog mutation it describes has already committed.
func (s *CatalogService) publish(action string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
		"sku":  product.SKU,
	}
	if err := s.mqClient.PublishProductEvent(action, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", action, product.ID, err)
	}
}
