package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	// Delete only matches integer ids. The unconstrained fallback answers
	// 404 for any other segment; without it Fiber would respond 405
	// because GET and PUT are registered on the same path.
	productRoutes.Delete("/:id<int>", h.HandleDeleteProduct)
	productRoutes.Delete("/:id", func(c *fiber.Ctx) error {
		return h.notFound(c, c.Params("id"))
	})
}

// requireJSON enforces the content type on mutating requests before any
// parsing happens. It returns false after writing the 415 response.
func (h *ProductHandler) requireJSON(c *fiber.Ctx) bool {
	if c.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		return true
	}
	log.Printf("Invalid Content-Type: %q", c.Get(fiber.HeaderContentType))
	c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"message": fmt.Sprintf("Content-Type must be %s", fiber.MIMEApplicationJSON),
	})
	return false
}

// parsePayload deserializes and validates a product payload. It returns nil
// after writing the 400 response when the body is invalid.
func (h *ProductHandler) parsePayload(c *fiber.Ctx) *models.ProductPayload {
	var payload models.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing product body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product body",
			"error":   err.Error(),
		})
		return nil
	}

	if err := h.validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
		return nil
	}
	return &payload
}

// HandleCreateProduct creates a new product from the posted JSON body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	log.Println("Request to Create a Product")
	if !h.requireJSON(c) {
		return nil
	}

	payload := h.parsePayload(c)
	if payload == nil {
		return nil
	}

	product := payload.ToProduct()
	if err := h.service.CreateProduct(product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	c.Location(fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts lists products, optionally filtered by exactly one of
// the name, category, or available query parameters. The filters are
// mutually exclusive and evaluated in that fixed order.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)

	args := c.Context().QueryArgs()
	switch {
	case args.Has("name"):
		name := c.Query("name")
		log.Printf("Request to list Products by name: %s", name)
		products, err = h.service.FindProductsByName(name)
	case args.Has("category"):
		category, parseErr := models.ParseCategory(c.Query("category"))
		if parseErr != nil {
			log.Printf("Error parsing category filter: %v", parseErr)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid category",
				"error":   parseErr.Error(),
			})
		}
		log.Printf("Request to list Products by category: %s", category)
		products, err = h.service.FindProductsByCategory(category)
	case args.Has("available"):
		// Any non-empty value selects available products; only
		// available= (empty) selects unavailable ones.
		available := c.Query("available") != ""
		log.Printf("Request to list Products by availability: %t", available)
		products, err = h.service.FindProductsByAvailability(available)
	default:
		log.Println("Request to list all Products")
		products, err = h.service.GetAllProducts()
	}

	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by the id path segment.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c, c.Params("id"))
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return h.notFound(c, c.Params("id"))
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces the mutable fields of an existing product
// with the posted JSON body. The path id is authoritative; an id in the
// body is ignored.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	log.Printf("Request to Update product with id [%s]", c.Params("id"))
	if !h.requireJSON(c) {
		return nil
	}

	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c, c.Params("id"))
	}

	existing, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return h.notFound(c, c.Params("id"))
		}
		log.Printf("Error getting product %d for update: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}

	payload := h.parsePayload(c)
	if payload == nil {
		return nil
	}

	updated := payload.ToProduct()
	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.Available = updated.Available
	existing.Category = updated.Category

	if err := h.service.UpdateProduct(existing); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(existing)
}

// HandleDeleteProduct deletes a product by its integer id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	log.Printf("Request to Delete product with id [%s]", c.Params("id"))
	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c, c.Params("id"))
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return h.notFound(c, c.Params("id"))
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// productID parses the id path segment. A non-integer id can never match a
// stored product, so callers report it as not found.
func (h *ProductHandler) productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with id %s was not found", id),
	})
}
