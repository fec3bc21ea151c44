package repository

import (
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(quote *model.Quote) error
	CreateItems(items []model.QuoteItem) error
	FindByID(id uint) (*model.Quote, error)
	FindByUserID(userID uint) ([]model.Quote, error)
	FindAll() ([]model.Quote, error)
	UpdateStatus(id uint, status model.QuoteStatus) error
	CloseStalePending(olderThan time.Time) (int64, error)
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(quote *model.Quote) error {
	logger.Debug("Creating quote in database", map[string]interface{}{
		"user_id": quote.UserID,
		"status":  quote.Status,
	})

	if err := r.db.Create(quote).Error; err != nil {
		logger.Error("Failed to create quote in database", err, map[string]interface{}{
			"user_id": quote.UserID,
		})
		return err
	}

	logger.Debug("Quote created in database", map[string]interface{}{
		"quote_id": quote.ID,
		"user_id":  quote.UserID,
	})
	return nil
}

// CreateItems inserts all line items in a single batch statement.
func (r *quoteRepository) CreateItems(items []model.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}

	logger.Debug("Creating quote items in database", map[string]interface{}{
		"quote_id": items[0].QuoteID,
		"count":    len(items),
	})

	if err := r.db.Create(&items).Error; err != nil {
		logger.Error("Failed to create quote items in database", err, map[string]interface{}{
			"quote_id": items[0].QuoteID,
			"count":    len(items),
		})
		return err
	}
	return nil
}

func (r *quoteRepository) FindByID(id uint) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("User.Profile").
		First(&quote, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find quote by ID in database", err, map[string]interface{}{
				"quote_id": id,
			})
		}
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) FindByUserID(userID uint) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		logger.Error("Failed to find quotes by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) FindAll() ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("User.Profile").
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		logger.Error("Failed to find all quotes in database", err)
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) UpdateStatus(id uint, status model.QuoteStatus) error {
	logger.Debug("Updating quote status in database", map[string]interface{}{
		"quote_id": id,
		"status":   status,
	})

	result := r.db.Model(&model.Quote{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update quote status in database", result.Error, map[string]interface{}{
			"quote_id": id,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseStalePending moves pending quotes created before olderThan to closed.
func (r *quoteRepository) CloseStalePending(olderThan time.Time) (int64, error) {
	result := r.db.Model(&model.Quote{}).
		Where("status = ? AND created_at < ?", model.QuoteStatusPending, olderThan).
		Update("status", model.QuoteStatusClosed)
	if result.Error != nil {
		logger.Error("Failed to close stale pending quotes in database", result.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
