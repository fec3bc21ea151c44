package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	apperrors "github.com/mdehtemam/bagquote-backend/internal/errors"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type VariantRequest struct {
	Color    string `json:"color" binding:"required"`
	SKU      string `json:"sku"`
	ImageURL string `json:"image_url"`
}

type CreateProductRequest struct {
	CategoryID  uint             `json:"category_id" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	MOQ         int              `json:"moq"`
	Rate        float64          `json:"rate"`
	Material    string           `json:"material"`
	Size        string           `json:"size"`
	Capacity    string           `json:"capacity"`
	SKU         string           `json:"sku"`
	ImageURL    string           `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
	Variants    []VariantRequest `json:"variants"`
}

type UpdateProductRequest struct {
	CategoryID  uint             `json:"category_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	MOQ         int              `json:"moq"`
	Rate        float64          `json:"rate"`
	Material    string           `json:"material"`
	Size        string           `json:"size"`
	Capacity    string           `json:"capacity"`
	ImageURL    string           `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
	Variants    []VariantRequest `json:"variants"`
}

type AddProductImageRequest struct {
	URL       string `json:"url" binding:"required"`
	VariantID *uint  `json:"variant_id"`
	IsPrimary bool   `json:"is_primary"`
}

// ListProducts returns the catalog, filterable by category and search term.
// Storefront requests only see active products; admins pass include_inactive.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search:     c.Query("search"),
		ActiveOnly: true,
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			log.Warn("Invalid category ID in product list", map[string]interface{}{
				"category_id": categoryStr,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	// Inactive products are only visible to admins.
	if c.Query("include_inactive") == "true" {
		if role, ok := middleware.GetUserRole(c); ok && role == model.RoleAdmin {
			filter.ActiveOnly = false
		}
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, map[string]interface{}{
			"category_id": filter.CategoryID,
			"search":      filter.Search,
		})
		apperrors.InternalError(c, "Failed to load products")
		return
	}

	log.Info("Products listed successfully", map[string]interface{}{
		"count":       len(products),
		"category_id": filter.CategoryID,
		"search":      filter.Search,
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with variants and images
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to load the product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product with its color variants (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	input := service.CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		MOQ:         req.MOQ,
		Rate:        req.Rate,
		Material:    req.Material,
		Size:        req.Size,
		Capacity:    req.Capacity,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	for _, v := range req.Variants {
		input.Variants = append(input.Variants, service.VariantInput{
			Color:    v.Color,
			SKU:      v.SKU,
			ImageURL: v.ImageURL,
		})
	}

	product, err := ctrl.productService.CreateProduct(input)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found for product creation", map[string]interface{}{
				"category_id": req.CategoryID,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		if errors.Is(err, service.ErrDuplicateSKU) {
			log.Warn("Duplicate SKU on product creation", map[string]interface{}{
				"sku": req.SKU,
			})
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "A product with this SKU already exists")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create the product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates a product and replaces its variants (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	input := service.UpdateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		MOQ:         req.MOQ,
		Rate:        req.Rate,
		Material:    req.Material,
		Size:        req.Size,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	if req.Variants != nil {
		input.Variants = make([]service.VariantInput, 0, len(req.Variants))
		for _, v := range req.Variants {
			input.Variants = append(input.Variants, service.VariantInput{
				Color:    v.Color,
				SKU:      v.SKU,
				ImageURL: v.ImageURL,
			})
		}
	}

	product, err := ctrl.productService.UpdateProduct(id, input)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for update", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found for product update", map[string]interface{}{
				"product_id":  id,
				"category_id": req.CategoryID,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to update the product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct soft-deletes a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete the product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// AddProductImage attaches an uploaded image to a product (admin)
// POST /api/v1/admin/products/:id/images
func (ctrl *ProductController) AddProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add product image request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	image, err := ctrl.productService.AddProductImage(id, req.VariantID, req.URL, req.IsPrimary)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for image attach", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to attach product image", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to attach the image")
		return
	}

	log.Info("Product image attached successfully", map[string]interface{}{
		"product_id": id,
		"image_id":   image.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image attached successfully",
		"image":   image,
	})
}

// parseIDParam parses a uint path parameter, responding with 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
