package service

import (
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
)

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

type ContactService interface {
	SubmitContact(input ContactInput) (*model.Contact, error)
	ListContacts() ([]model.Contact, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) SubmitContact(input ContactInput) (*model.Contact, error) {
	logger.Info("Submitting contact message", map[string]interface{}{
		"name":    input.Name,
		"company": input.Company,
	})

	contact := &model.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Message: input.Message,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		logger.Error("Failed to submit contact message", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Contact message submitted", map[string]interface{}{
		"contact_id": contact.ID,
	})

	return contact, nil
}

func (s *contactService) ListContacts() ([]model.Contact, error) {
	contacts, err := s.contactRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list contact messages", err)
		return nil, err
	}
	return contacts, nil
}
