package service

import (
	"context"
	"errors"
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrEmptyCart          = errors.New("quote cart is empty")
	ErrProfileRequired    = errors.New("a profile is required to request a quote")
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
)

// QuoteNotifier pushes quote lifecycle events to connected clients.
// Delivery is best effort.
type QuoteNotifier interface {
	NotifyQuoteStatus(userID, quoteID uint, status model.QuoteStatus)
}

type QuoteService interface {
	CreateQuoteFromCart(ctx context.Context, userID uint, notes string) (*model.Quote, error)
	GetUserQuotes(userID uint) ([]model.Quote, error)
	GetQuoteByID(userID, quoteID uint, isAdmin bool) (*model.Quote, error)
	ListAllQuotes() ([]model.Quote, error)
	UpdateStatus(quoteID uint, status model.QuoteStatus) error
	CloseStalePending(staleAfterDays int) (int64, error)
}

type quoteService struct {
	quoteRepo   repository.QuoteRepository
	profileRepo repository.ProfileRepository
	cartService CartService
	notifier    QuoteNotifier
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	profileRepo repository.ProfileRepository,
	cartService CartService,
	notifier QuoteNotifier,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		profileRepo: profileRepo,
		cartService: cartService,
		notifier:    notifier,
	}
}

// CreateQuoteFromCart turns the user's cart into a durable quote: one parent
// row, then all line items in a single batch. There is no rollback if the
// item batch fails: the parent row stays, the cart is retained and a retry
// creates a fresh quote. The cart is cleared only after full success.
func (s *quoteService) CreateQuoteFromCart(ctx context.Context, userID uint, notes string) (*model.Quote, error) {
	logger.Info("Creating quote from cart", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.profileRepo.FindByUserID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create quote: profile missing", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrProfileRequired
		}
		logger.Error("Failed to fetch profile for quote creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	lines, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		logger.Error("Failed to load cart for quote creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(lines) == 0 {
		logger.Warn("Cannot create quote: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	quote := &model.Quote{
		UserID: userID,
		Status: model.QuoteStatusPending,
		Notes:  notes,
	}
	if err := s.quoteRepo.Create(quote); err != nil {
		logger.Error("Failed to create quote record", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	items := make([]model.QuoteItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.QuoteItem{
			QuoteID:            quote.ID,
			ProductID:          line.ProductID,
			Quantity:           line.Quantity,
			CustomizationNotes: line.CustomizationNotes,
			SelectedColor:      line.SelectedColor,
		})
	}

	if err := s.quoteRepo.CreateItems(items); err != nil {
		// The parent quote row stays behind without items. Surfacing the error
		// keeps the cart intact so the caller can retry with a new quote.
		logger.Error("Failed to create quote items, parent quote persists without items", err, map[string]interface{}{
			"user_id":  userID,
			"quote_id": quote.ID,
		})
		return nil, err
	}
	quote.Items = items

	if err := s.cartService.Clear(ctx, userID); err != nil {
		logger.Warn("Quote submitted but cart clear failed", map[string]interface{}{
			"user_id":  userID,
			"quote_id": quote.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("Quote created successfully", map[string]interface{}{
		"user_id":    userID,
		"quote_id":   quote.ID,
		"item_count": len(items),
	})

	return quote, nil
}

func (s *quoteService) GetUserQuotes(userID uint) ([]model.Quote, error) {
	logger.Debug("Fetching user quotes", map[string]interface{}{
		"user_id": userID,
	})

	quotes, err := s.quoteRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user quotes", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return quotes, nil
}

func (s *quoteService) GetQuoteByID(userID, quoteID uint, isAdmin bool) (*model.Quote, error) {
	quote, err := s.quoteRepo.FindByID(quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		logger.Error("Failed to fetch quote", err, map[string]interface{}{
			"quote_id": quoteID,
		})
		return nil, err
	}

	// Ownership mismatch is reported as not-found rather than forbidden.
	if !isAdmin && quote.UserID != userID {
		logger.Warn("Quote access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"quote_id": quoteID,
			"owner_id": quote.UserID,
		})
		return nil, ErrQuoteNotFound
	}

	return quote, nil
}

func (s *quoteService) ListAllQuotes() ([]model.Quote, error) {
	logger.Debug("Fetching all quotes")

	quotes, err := s.quoteRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch all quotes", err)
		return nil, err
	}
	return quotes, nil
}

func (s *quoteService) UpdateStatus(quoteID uint, status model.QuoteStatus) error {
	switch status {
	case model.QuoteStatusPending, model.QuoteStatusReviewed, model.QuoteStatusQuoted, model.QuoteStatusClosed:
	default:
		return ErrInvalidQuoteStatus
	}

	logger.Info("Updating quote status", map[string]interface{}{
		"quote_id": quoteID,
		"status":   status,
	})

	quote, err := s.quoteRepo.FindByID(quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	if err := s.quoteRepo.UpdateStatus(quoteID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyQuoteStatus(quote.UserID, quoteID, status)
	}

	return nil
}

// CloseStalePending closes pending quotes older than the configured age.
// Called by the daily scheduler.
func (s *quoteService) CloseStalePending(staleAfterDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -staleAfterDays)

	closed, err := s.quoteRepo.CloseStalePending(cutoff)
	if err != nil {
		logger.Error("Failed to close stale pending quotes", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	if closed > 0 {
		logger.Info("Closed stale pending quotes", map[string]interface{}{
			"count":  closed,
			"cutoff": cutoff,
		})
	}
	return closed, nil
}
