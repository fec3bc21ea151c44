package repository

import (
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll() ([]model.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"name":    contact.Name,
		"company": contact.Company,
	})

	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"name": contact.Name,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		logger.Error("Failed to find contact messages in database", err)
		return nil, err
	}
	return contacts, nil
}
