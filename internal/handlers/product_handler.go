package handlers

import (
	"errors"
	"log"

	"inventario/internal/models"
	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog *services.CatalogService
	editor  *services.EditSession
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService, editor *services.EditSession) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		editor:  editor,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// productResponse decorates a product with its display-only low-stock flag.
type productResponse struct {
	models.Product
	LowStock bool `json:"low_stock"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{Product: p, LowStock: p.LowStock()}
}

// HandleGetProducts retrieves the catalog, filtered by the optional
// "category" and "search" query parameters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	criteria := services.FilterCriteria{
		Category: c.Query("category", models.CategoryAll),
		Search:   c.Query("search"),
	}

	products, err := h.catalog.SearchProducts(c.Context(), criteria)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}

	response := make([]productResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	return c.JSON(response)
}

// HandleGetProduct retrieves a single product by its id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	product, err := h.catalog.GetProductByID(c.Context(), id)
	if err != nil {
		return h.respondError(c, id, err, "Could not retrieve product")
	}
	return c.JSON(toProductResponse(*product))
}

// HandleCreateProduct creates a new product. The body is treated as a set
// of (field, value) change events applied to a fresh create draft, so
// unknown fields are rejected instead of silently dropped.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	draft, err := h.draftFromBody(c, services.ModeCreate, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.editor.Commit(c.Context(), draft)
	if err != nil {
		return h.respondError(c, 0, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(*product))
}

// HandleUpdateProduct edits an existing product: the stored record seeds the
// draft, the body's fields are applied over it, and the merged result is
// committed. Fields absent from the body keep their stored values.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	product, err := h.catalog.GetProductByID(c.Context(), id)
	if err != nil {
		return h.respondError(c, id, err, "Could not retrieve product")
	}

	draft, err := h.draftFromBody(c, services.ModeEdit, product)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	updated, err := h.editor.Commit(c.Context(), draft)
	if err != nil {
		return h.respondError(c, id, err, "Could not update product")
	}
	return c.JSON(toProductResponse(*updated))
}

// HandleDeleteProduct deletes a product by its id. The confirmation step
// lives with the caller; a request that reaches this handler is final.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	if err := h.catalog.DeleteProduct(c.Context(), id); err != nil {
		return h.respondError(c, id, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Producto eliminado",
	})
}

// draftFromBody opens an edit-session draft and applies the request body to
// it as field-level change events.
func (h *ProductHandler) draftFromBody(c *fiber.Ctx, mode string, product *models.Product) (services.Draft, error) {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return services.Draft{}, err
	}

	draft, err := h.editor.Begin(mode, product)
	if err != nil {
		return services.Draft{}, err
	}
	for field, value := range fields {
		if field == "id" {
			// The id comes from the route, never the body.
			continue
		}
		if draft, err = h.editor.SetField(draft, field, value); err != nil {
			return services.Draft{}, err
		}
	}
	return draft, nil
}

// respondError maps service errors onto HTTP responses: validation failures
// (missing or invalid fields) are a 400, unknown ids are a 404, everything
// else is a 500.
func (h *ProductHandler) respondError(c *fiber.Ctx, id int, err error, message string) error {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationErr.Error(),
		})
	case errors.Is(err, models.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	log.Printf("Error handling product %d: %v", id, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
