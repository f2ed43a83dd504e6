package repositories

import (
	"context"
	"fmt"
	"strings"

	"inventario/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CatalogRepository defines the data-access contract for the product catalog.
// Every operation is context-aware and fallible so callers treat the store as
// remote, even when it is the in-memory backend with simulated latency.
type CatalogRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	Update(ctx context.Context, id int, draft models.ProductDraft) (*models.Product, error)
	Delete(ctx context.Context, id int) error
}

// validateDraft runs the struct tags over a draft, so negative prices or
// stock and unknown categories are rejected before anything is stored.
// Fields the draft leaves nil are skipped.
func validateDraft(draft models.ProductDraft) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return &models.ValidationError{
		Fields:  fields,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
	}
}

// productFromDraft materializes a new product from a create draft, filling
// in the category and image defaults. The draft must already have passed
// ValidateForCreate and validateDraft.
func productFromDraft(draft models.ProductDraft) models.Product {
	p := models.Product{Category: models.CategoryCalzado, Image: models.DefaultImageURL}
	draft.ApplyTo(&p)
	if p.Image == "" {
		p.Image = models.DefaultImageURL
	}
	return p
}
