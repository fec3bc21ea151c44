package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	apperrors "github.com/mdehtemam/bagquote-backend/internal/errors"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores an inquiry from the contact form (public)
// POST /api/v1/contact
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please fill in the required fields")
		return
	}

	contact, err := ctrl.contactService.SubmitContact(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		log.Error("Failed to submit contact message", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to send your message. Please try again later")
		return
	}

	log.Info("Contact message submitted successfully", map[string]interface{}{
		"contact_id": contact.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for reaching out. We will get back to you shortly",
	})
}

// ListContacts returns all inquiries, newest first (admin)
// GET /api/v1/admin/contacts
func (ctrl *ContactController) ListContacts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contacts, err := ctrl.contactService.ListContacts()
	if err != nil {
		log.Error("Failed to list contact messages", err)
		apperrors.InternalError(c, "Failed to load contact messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}
