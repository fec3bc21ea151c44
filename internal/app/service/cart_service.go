package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartLineNotFound = errors.New("cart line not found")
)

// AddLineInput carries the optional fields of an add operation. Zero values
// get the documented defaults: Quantity <= 0 becomes the product's MOQ,
// CustomizationNotes and SelectedColor default to the empty string.
type AddLineInput struct {
	ProductID          uint
	Quantity           int
	CustomizationNotes string
	SelectedColor      string
}

// CartService is the quote-cart state container. Lines live in the CartStore
// as one serialized JSON list per user; every mutation loads the list,
// applies the change and rewrites the whole payload, so the stored state
// always matches the last applied mutation.
type CartService interface {
	GetCart(ctx context.Context, userID uint) ([]model.QuoteCartLine, error)
	AddLine(ctx context.Context, userID uint, input AddLineInput) error
	RemoveProduct(ctx context.Context, userID, productID uint) error
	UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error
	UpdateNotes(ctx context.Context, userID, productID uint, notes string) error
	Clear(ctx context.Context, userID uint) error
	TotalItems(ctx context.Context, userID uint) (int, error)
}

type cartService struct {
	store       repository.CartStore
	productRepo repository.ProductRepository
}

func NewCartService(store repository.CartStore, productRepo repository.ProductRepository) CartService {
	return &cartService{
		store:       store,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uint) ([]model.QuoteCartLine, error) {
	return s.load(ctx, userID)
}

func (s *cartService) AddLine(ctx context.Context, userID uint, input AddLineInput) error {
	logger.Info("Adding line to quote cart", map[string]interface{}{
		"user_id":        userID,
		"product_id":     input.ProductID,
		"quantity":       input.Quantity,
		"selected_color": input.SelectedColor,
	})

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": input.ProductID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
		})
		return err
	}

	if !product.IsActive {
		logger.Warn("Cannot add to cart: product is inactive", map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
		})
		return ErrProductInactive
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	line := model.QuoteCartLine{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductImage:       imageForColor(product, input.SelectedColor),
		Quantity:           input.Quantity,
		CustomizationNotes: input.CustomizationNotes,
		MOQ:                product.MOQ,
		SelectedColor:      input.SelectedColor,
	}

	return s.save(ctx, userID, mergeLine(lines, line))
}

func (s *cartService) RemoveProduct(ctx context.Context, userID, productID uint) error {
	logger.Info("Removing product from quote cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	// Removal matches on product id only and drops every color variant line,
	// deliberately coarser than the (product, color) merge key of AddLine.
	return s.save(ctx, userID, removeProduct(lines, productID))
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	logger.Debug("Updating cart line quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	updated, matched := setQuantity(lines, productID, quantity)
	if !matched {
		logger.Warn("Cart line not found for quantity update", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrCartLineNotFound
	}

	return s.save(ctx, userID, updated)
}

func (s *cartService) UpdateNotes(ctx context.Context, userID, productID uint, notes string) error {
	logger.Debug("Updating cart line notes", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	updated, matched := setNotes(lines, productID, notes)
	if !matched {
		logger.Warn("Cart line not found for notes update", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrCartLineNotFound
	}

	return s.save(ctx, userID, updated)
}

// Clear removes the user's cart key entirely instead of storing an empty
// list; an absent key already reads back as an empty cart.
func (s *cartService) Clear(ctx context.Context, userID uint) error {
	logger.Info("Clearing quote cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.store.Delete(ctx, userID)
}

func (s *cartService) TotalItems(ctx context.Context, userID uint) (int, error) {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return totalItems(lines), nil
}

// load reads and deserializes the line list. An absent key yields an empty
// cart; so does a corrupt payload, which must never fail initialization.
func (s *cartService) load(ctx context.Context, userID uint) ([]model.QuoteCartLine, error) {
	payload, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var lines []model.QuoteCartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		logger.Warn("Corrupt cart payload in store, treating as empty", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, nil
	}
	return lines, nil
}

func (s *cartService) save(ctx context.Context, userID uint, lines []model.QuoteCartLine) error {
	if lines == nil {
		lines = []model.QuoteCartLine{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		logger.Error("Failed to serialize cart lines", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return s.store.Set(ctx, userID, string(payload))
}

// imageForColor prefers the variant image matching the selected color and
// falls back to the product image.
func imageForColor(product *model.Product, color string) string {
	if color != "" {
		for _, variant := range product.Variants {
			if variant.Color == color && variant.ImageURL != "" {
				return variant.ImageURL
			}
		}
	}
	return product.ImageURL
}

// mergeLine folds a new line into the list. Lines are the same only when both
// product id and selected color match; a merge adds the incoming quantity (or
// the MOQ when the incoming quantity is not positive) to the existing line.
func mergeLine(lines []model.QuoteCartLine, line model.QuoteCartLine) []model.QuoteCartLine {
	increment := line.Quantity
	if increment <= 0 {
		increment = line.MOQ
	}

	for i := range lines {
		if lines[i].ProductID == line.ProductID && lines[i].SelectedColor == line.SelectedColor {
			lines[i].Quantity += increment
			return lines
		}
	}

	line.Quantity = increment
	return append(lines, line)
}

func removeProduct(lines []model.QuoteCartLine, productID uint) []model.QuoteCartLine {
	remaining := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			remaining = append(remaining, line)
		}
	}
	return remaining
}

func setQuantity(lines []model.QuoteCartLine, productID uint, quantity int) ([]model.QuoteCartLine, bool) {
	matched := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			matched = true
		}
	}
	return lines, matched
}

func setNotes(lines []model.QuoteCartLine, productID uint, notes string) ([]model.QuoteCartLine, bool) {
	matched := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].CustomizationNotes = notes
			matched = true
		}
	}
	return lines, matched
}

func totalItems(lines []model.QuoteCartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
