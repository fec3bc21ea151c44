package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	apperrors "github.com/mdehtemam/bagquote-backend/internal/errors"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
)

type QuoteController struct {
	quoteService  service.QuoteService
	exportService service.ExportService
}

func NewQuoteController(quoteService service.QuoteService, exportService service.ExportService) *QuoteController {
	return &QuoteController{
		quoteService:  quoteService,
		exportService: exportService,
	}
}

type SubmitQuoteRequest struct {
	Notes string `json:"notes"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitQuote turns the user's cart into a quote request
// POST /api/v1/quotes
func (ctrl *QuoteController) SubmitQuote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to submit quote")
		apperrors.Unauthorized(c, "")
		return
	}

	// Body is optional; submitting without notes is the common case.
	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("Invalid submit quote request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	quote, err := ctrl.quoteService.CreateQuoteFromCart(c.Request.Context(), userID, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrProfileRequired) {
			log.Warn("Quote submission blocked: profile missing", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.AuthProfileRequired, "Complete your profile before requesting a quote")
			return
		}
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Quote submission blocked: cart empty", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your quote cart is empty")
			return
		}
		log.Error("Failed to submit quote", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.QuoteSubmitFailed, "Failed to submit your quote request")
		return
	}

	log.Info("Quote submitted successfully", map[string]interface{}{
		"user_id":    userID,
		"quote_id":   quote.ID,
		"item_count": len(quote.Items),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quote request submitted successfully",
		"quote":   quote,
	})
}

// ListMyQuotes returns the authenticated user's quote history
// GET /api/v1/quotes
func (ctrl *QuoteController) ListMyQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to list quotes")
		apperrors.Unauthorized(c, "")
		return
	}

	quotes, err := ctrl.quoteService.GetUserQuotes(userID)
	if err != nil {
		log.Error("Failed to list user quotes", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load your quote requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// GetQuote returns one quote. Users only see their own; admins see all.
// GET /api/v1/quotes/:id
func (ctrl *QuoteController) GetQuote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to view quote")
		apperrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	isAdmin := false
	if role, roleOK := middleware.GetUserRole(c); roleOK && role == model.RoleAdmin {
		isAdmin = true
	}

	quote, err := ctrl.quoteService.GetQuoteByID(userID, id, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			log.Warn("Quote not found or not accessible", map[string]interface{}{
				"user_id":  userID,
				"quote_id": id,
			})
			apperrors.NotFound(c, apperrors.QuoteNotFound, "Quote not found")
			return
		}
		log.Error("Failed to get quote", err, map[string]interface{}{
			"quote_id": id,
		})
		apperrors.InternalError(c, "Failed to load the quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}

// ListAllQuotes returns every quote with customer details (admin)
// GET /api/v1/admin/quotes
func (ctrl *QuoteController) ListAllQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	quotes, err := ctrl.quoteService.ListAllQuotes()
	if err != nil {
		log.Error("Failed to list all quotes", err)
		apperrors.InternalError(c, "Failed to load quotes")
		return
	}

	log.Info("All quotes listed successfully", map[string]interface{}{
		"count": len(quotes),
	})

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// UpdateQuoteStatus moves a quote through the pipeline (admin)
// PUT /api/v1/admin/quotes/:id/status
func (ctrl *QuoteController) UpdateQuoteStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quote status request", map[string]interface{}{
			"quote_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.quoteService.UpdateStatus(id, model.QuoteStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuoteStatus) {
			log.Warn("Invalid quote status value", map[string]interface{}{
				"quote_id": id,
				"status":   req.Status,
			})
			apperrors.BadRequest(c, apperrors.QuoteInvalidStatus, "Invalid quote status")
			return
		}
		if errors.Is(err, service.ErrQuoteNotFound) {
			log.Warn("Quote not found for status update", map[string]interface{}{
				"quote_id": id,
			})
			apperrors.NotFound(c, apperrors.QuoteNotFound, "Quote not found")
			return
		}
		log.Error("Failed to update quote status", err, map[string]interface{}{
			"quote_id": id,
			"status":   req.Status,
		})
		apperrors.InternalError(c, "Failed to update the quote status")
		return
	}

	log.Info("Quote status updated successfully", map[string]interface{}{
		"quote_id": id,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote status updated successfully",
	})
}

// ExportQuotes streams all quotes as an XLSX workbook (admin)
// GET /api/v1/admin/quotes/export
func (ctrl *QuoteController) ExportQuotes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, filename, err := ctrl.exportService.ExportQuotes()
	if err != nil {
		log.Error("Failed to export quotes", err)
		apperrors.InternalError(c, "Failed to generate the export")
		return
	}

	log.Info("Quote export downloaded", map[string]interface{}{
		"filename": filename,
		"size":     len(data),
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
