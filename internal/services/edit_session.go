package services

import (
	"context"
	"fmt"

	"inventario/internal/models"

	"github.com/spf13/cast"
)

// Edit session modes.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

// Draft is the transient, uncommitted state of a create-or-edit form. It is
// a value: SetField returns a new Draft, and discarding a Draft is how a
// session is cancelled.
//
// A draft remembers which fields were actually touched. In create mode the
// numeric fields start at 0 but untouched, like empty form inputs, so a
// commit without an explicit price or stock fails validation instead of
// persisting zeros.
type Draft struct {
	Mode      string
	ProductID int // id of the product being edited; 0 in create mode

	Name        string
	Category    string
	Price       float64
	Description string
	Stock       int
	SKU         string
	Image       string

	set fieldSet
}

// fieldSet tracks which draft fields carry a deliberate value. It is a
// plain value struct so copying a Draft copies the set-ness with it.
type fieldSet struct {
	name, category, price, description, stock, sku, image bool
}

// EditSession drives the draft lifecycle for creating or editing one
// product: Begin initializes a draft, SetField applies field-level change
// events, Commit routes the result to the catalog, Cancel discards it.
type EditSession struct {
	catalog *CatalogService
}

// NewEditSession creates an EditSession committing into the given catalog.
func NewEditSession(catalog *CatalogService) *EditSession {
	return &EditSession{
		catalog: catalog,
	}
}

// Begin opens a draft. In create mode the draft starts from the form
// defaults (category calzado, price 0, stock 0, everything else empty),
// with only the category counting as set. In edit mode it starts as a
// field-by-field copy of product, which must be non-nil, with every field
// set.
func (e *EditSession) Begin(mode string, product *models.Product) (Draft, error) {
	switch mode {
	case ModeCreate:
		return Draft{
			Mode:     ModeCreate,
			Category: models.CategoryCalzado,
			set:      fieldSet{category: true},
		}, nil
	case ModeEdit:
		if product == nil {
			return Draft{}, fmt.Errorf("edit mode requires a product")
		}
		return Draft{
			Mode:        ModeEdit,
			ProductID:   product.ID,
			Name:        product.Name,
			Category:    product.Category,
			Price:       product.Price,
			Description: product.Description,
			Stock:       product.Stock,
			SKU:         product.SKU,
			Image:       product.Image,
			set: fieldSet{
				name: true, category: true, price: true,
				description: true, stock: true, sku: true, image: true,
			},
		}, nil
	}
	return Draft{}, fmt.Errorf("unknown edit mode %q", mode)
}

// SetField applies one (field, value) change event and returns the updated
// draft; the receiver is untouched. Price and stock accept numbers or
// numeric strings, matching form input, and must not be negative. Unknown
// field names are rejected.
func (e *EditSession) SetField(draft Draft, field string, value interface{}) (Draft, error) {
	switch field {
	case "name":
		s, err := cast.ToStringE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for name: %w", err)
		}
		draft.Name = s
		draft.set.name = true
	case "category":
		s, err := cast.ToStringE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for category: %w", err)
		}
		if !models.ValidCategory(s) {
			return draft, &models.ValidationError{Fields: []string{"category"}}
		}
		draft.Category = s
		draft.set.category = true
	case "price":
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for price: %w", err)
		}
		if f < 0 {
			return draft, &models.ValidationError{
				Fields:  []string{"price"},
				Message: "price must not be negative",
			}
		}
		draft.Price = f
		draft.set.price = true
	case "description":
		s, err := cast.ToStringE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for description: %w", err)
		}
		draft.Description = s
		draft.set.description = true
	case "stock":
		n, err := cast.ToIntE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for stock: %w", err)
		}
		if n < 0 {
			return draft, &models.ValidationError{
				Fields:  []string{"stock"},
				Message: "stock must not be negative",
			}
		}
		draft.Stock = n
		draft.set.stock = true
	case "sku":
		s, err := cast.ToStringE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for sku: %w", err)
		}
		draft.SKU = s
		draft.set.sku = true
	case "image":
		s, err := cast.ToStringE(value)
		if err != nil {
			return draft, fmt.Errorf("invalid value for image: %w", err)
		}
		draft.Image = s
		draft.set.image = true
	default:
		return draft, fmt.Errorf("unknown field %q", field)
	}
	return draft, nil
}

// Commit validates the draft and routes it to the catalog: create mode adds
// a new product, edit mode merges over the product the session was opened
// on. A non-empty name and an explicit price are required; only fields that
// were actually set reach the store, so its own presence checks fire for
// anything else the form left blank. An image set to the empty string falls
// back to the default placeholder, as the form does. The returned product
// is the persisted record; the caller should close the session on success.
func (e *EditSession) Commit(ctx context.Context, draft Draft) (*models.Product, error) {
	var missing []string
	if !draft.set.name || draft.Name == "" {
		missing = append(missing, "name")
	}
	if !draft.set.price {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Fields: missing}
	}

	var productDraft models.ProductDraft
	if draft.set.name {
		productDraft.Name = &draft.Name
	}
	if draft.set.category {
		productDraft.Category = &draft.Category
	}
	if draft.set.price {
		productDraft.Price = &draft.Price
	}
	if draft.set.description {
		productDraft.Description = &draft.Description
	}
	if draft.set.stock {
		productDraft.Stock = &draft.Stock
	}
	if draft.set.sku {
		productDraft.SKU = &draft.SKU
	}
	if draft.set.image {
		image := draft.Image
		if image == "" {
			image = models.DefaultImageURL
		}
		productDraft.Image = &image
	}

	switch draft.Mode {
	case ModeCreate:
		return e.catalog.CreateProduct(ctx, productDraft)
	case ModeEdit:
		return e.catalog.UpdateProduct(ctx, draft.ProductID, productDraft)
	}
	return nil, fmt.Errorf("unknown edit mode %q", draft.Mode)
}

// Cancel discards the draft with no side effects. Drafts are values, so
// there is nothing to roll back; the method exists to make the intent
// explicit at call sites.
func (e *EditSession) Cancel(Draft) {}
