package models

// Product categories accepted by the catalog. "all" is a filter value, not a
// category a product can carry.
const (
	CategoryCalzado      = "calzado"
	CategoryRopa         = "ropa"
	CategoryAccesorios   = "accesorios"
	CategoryEquipamiento = "equipamiento"

	CategoryAll = "all"
)

// DefaultImageURL is substituted when a product is created without an image.
const DefaultImageURL = "https://images.unsplash.com/photo-1556906781-9a412961c28c?w=400"

// LowStockThreshold marks products that should carry the low-stock badge.
const LowStockThreshold = 10

// Product represents one inventory item in the catalog.
type Product struct {
	ID          int     `json:"id" gorm:"primaryKey" validate:"omitempty,gt=0"`
	Name        string  `json:"name" validate:"required,max=100"`
	Category    string  `json:"category" validate:"required,oneof=calzado ropa accesorios equipamiento"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0"`
	SKU         string  `json:"sku" gorm:"column:sku;type:varchar(50)"`
	Image       string  `json:"image"`
}

// Categories lists the valid product categories in display order.
func Categories() []string {
	return []string{CategoryCalzado, CategoryRopa, CategoryAccesorios, CategoryEquipamiento}
}

// ValidCategory reports whether c is a category a product can carry.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCalzado, CategoryRopa, CategoryAccesorios, CategoryEquipamiento:
		return true
	}
	return false
}

// LowStock reports whether the product should be flagged as low on stock.
// Display-only: no reservation or reorder logic hangs off it.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// ProductDraft carries the fields of a create or update request. Pointer
// fields distinguish "absent" from "set to the zero value", so updates merge
// instead of overwriting fields the caller never mentioned.
type ProductDraft struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Category    *string  `json:"category" validate:"omitempty,oneof=calzado ropa accesorios equipamiento"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	SKU         *string  `json:"sku"`
	Image       *string  `json:"image"`
}

// ValidateForCreate checks that the fields a new product cannot live without
// are present: name, price, stock and sku. String fields count as missing
// when empty. Returns a *ValidationError naming every missing field.
func (d ProductDraft) ValidateForCreate() error {
	var missing []string
	if d.Name == nil || *d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Price == nil {
		missing = append(missing, "price")
	}
	if d.Stock == nil {
		missing = append(missing, "stock")
	}
	if d.SKU == nil || *d.SKU == "" {
		missing = append(missing, "sku")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ApplyTo merges the draft over an existing product, field by field. Fields
// absent from the draft are preserved.
func (d ProductDraft) ApplyTo(p *Product) {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Category != nil {
		p.Category = *d.Category
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	if d.SKU != nil {
		p.SKU = *d.SKU
	}
	if d.Image != nil {
		p.Image = *d.Image
	}
}
