package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	apperrors "github.com/mdehtemam/bagquote-backend/internal/errors"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID          uint   `json:"product_id" binding:"required"`
	Quantity           int    `json:"quantity"`
	CustomizationNotes string `json:"customization_notes"`
	SelectedColor      string `json:"selected_color"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type UpdateNotesRequest struct {
	CustomizationNotes string `json:"customization_notes"`
}

// GetCart returns the user's quote cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart")
		apperrors.Unauthorized(c, "")
		return
	}

	lines, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch your quote cart")
		return
	}

	totalItems := 0
	for _, line := range lines {
		totalItems += line.Quantity
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id":     userID,
		"line_count":  len(lines),
		"total_items": totalItems,
	})

	c.JSON(http.StatusOK, gin.H{
		"items":       lines,
		"line_count":  len(lines),
		"total_items": totalItems,
	})
}

// AddToCart adds a line to the quote cart. Quantity is optional; when
// omitted or not positive, the product's MOQ is used.
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart")
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Adding line to cart", map[string]interface{}{
		"user_id":        userID,
		"product_id":     req.ProductID,
		"quantity":       req.Quantity,
		"selected_color": req.SelectedColor,
	})

	err := ctrl.cartService.AddLine(c.Request.Context(), userID, service.AddLineInput{
		ProductID:          req.ProductID,
		Quantity:           req.Quantity,
		CustomizationNotes: req.CustomizationNotes,
		SelectedColor:      req.SelectedColor,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrProductInactive) {
			log.Warn("Inactive product rejected from cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.BadRequest(c, apperrors.ProductInactive, "This product is no longer available")
			return
		}
		log.Error("Failed to add line to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add the product to your quote cart")
		return
	}

	log.Info("Line added to cart successfully", map[string]interface{}{
		"user_id":        userID,
		"product_id":     req.ProductID,
		"selected_color": req.SelectedColor,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to your quote cart",
	})
}

// UpdateQuantity sets the quantity for all lines of a product
// PUT /api/v1/cart/:product_id/quantity
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update cart quantity")
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseProductID(c, log)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid quantity update request", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity must be greater than zero")
		return
	}

	err := ctrl.cartService.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartLineNotFound) {
			log.Warn("Cart line not found for quantity update", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.NotFound(c, apperrors.CartLineNotFound, "This product is not in your quote cart")
			return
		}
		log.Error("Failed to update cart quantity", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update your quote cart")
		return
	}

	log.Info("Cart quantity updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantity updated",
	})
}

// UpdateNotes sets the customization notes for all lines of a product
// PUT /api/v1/cart/:product_id/notes
func (ctrl *CartController) UpdateNotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update cart notes")
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseProductID(c, log)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid notes update request", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.cartService.UpdateNotes(c.Request.Context(), userID, productID, req.CustomizationNotes)
	if err != nil {
		if errors.Is(err, service.ErrCartLineNotFound) {
			log.Warn("Cart line not found for notes update", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.NotFound(c, apperrors.CartLineNotFound, "This product is not in your quote cart")
			return
		}
		log.Error("Failed to update cart notes", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update your quote cart")
		return
	}

	log.Info("Cart notes updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Customization notes updated",
	})
}

// RemoveFromCart removes every line of a product, all colors included
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove cart line")
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseProductID(c, log)
	if !ok {
		return
	}

	log.Debug("Removing product from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if err := ctrl.cartService.RemoveProduct(c.Request.Context(), userID, productID); err != nil {
		log.Error("Failed to remove product from cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update your quote cart")
		return
	}

	log.Info("Product removed from cart successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from your quote cart",
	})
}

// ClearCart empties the quote cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to clear cart")
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.Clear(c.Request.Context(), userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to clear your quote cart")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote cart cleared",
	})
}

func parseProductID(c *gin.Context, log *logger.Logger) (uint, bool) {
	idStr := c.Param("product_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}
