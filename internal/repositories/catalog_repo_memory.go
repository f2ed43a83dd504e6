package repositories

import (
	"context"
	"sync"
	"time"

	"inventario/internal/models"
)

// MemoryCatalogRepository is an in-memory implementation of CatalogRepository.
// It keeps the catalog as an ordered slice so listings and filters preserve
// insertion order, and simulates a remote store by sleeping for a configured
// latency before every operation.
//
// The write lock doubles as the single-writer queue: exactly one mutation is
// in flight at a time, later writers block until it completes, so concurrent
// edits cannot interleave inside the store.
type MemoryCatalogRepository struct {
	products []models.Product
	latency  time.Duration
	mu       sync.RWMutex
}

// NewMemoryCatalogRepository creates a memory-backed catalog preloaded with
// seed. The seed slice is copied; the caller keeps ownership of its own copy.
// latency is the artificial delay applied to every operation (0 disables it,
// which tests rely on).
func NewMemoryCatalogRepository(seed []models.Product, latency time.Duration) *MemoryCatalogRepository {
	r := &MemoryCatalogRepository{
		products: make([]models.Product, len(seed)),
		latency:  latency,
	}
	copy(r.products, seed)
	return r
}

// wait blocks for the configured latency or until ctx is cancelled.
func (r *MemoryCatalogRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(r.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List returns a defensive copy of the catalog in insertion order. Mutating
// the result never reaches stored state.
func (r *MemoryCatalogRepository) List(ctx context.Context) ([]models.Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a copy of the product with the given id.
func (r *MemoryCatalogRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, models.ErrProductNotFound
}

// Create validates the draft, assigns an id strictly greater than every id
// currently in the catalog, appends the new product and returns a copy of
// the persisted record.
func (r *MemoryCatalogRepository) Create(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	if err := draft.ValidateForCreate(); err != nil {
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	product := productFromDraft(draft)

	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, p := range r.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	product.ID = maxID + 1
	r.products = append(r.products, product)

	created := product
	return &created, nil
}

// Update merges the draft over the stored record, field by field. Fields
// absent from the draft are preserved. The catalog is unchanged on error.
func (r *MemoryCatalogRepository) Update(ctx context.Context, id int, draft models.ProductDraft) (*models.Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID != id {
			continue
		}
		updated := r.products[i]
		draft.ApplyTo(&updated)
		updated.ID = id
		r.products[i] = updated

		found := updated
		return &found, nil
	}
	return nil, models.ErrProductNotFound
}

// Delete removes the product with the given id. Deleting an id that is not
// in the catalog fails, including a second delete of the same id.
func (r *MemoryCatalogRepository) Delete(ctx context.Context, id int) error {
	if err := r.wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return models.ErrProductNotFound
}
