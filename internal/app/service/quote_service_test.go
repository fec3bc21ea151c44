package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingNotifier captures status pushes for assertions.
type recordingNotifier struct {
	events []model.QuoteStatus
	users  []uint
}

func (n *recordingNotifier) NotifyQuoteStatus(userID, quoteID uint, status model.QuoteStatus) {
	n.users = append(n.users, userID)
	n.events = append(n.events, status)
}

// failingItemsQuoteRepo makes the line item batch fail while the parent
// insert succeeds.
type failingItemsQuoteRepo struct {
	repository.QuoteRepository
}

func (r *failingItemsQuoteRepo) CreateItems(items []model.QuoteItem) error {
	return errors.New("item batch failed")
}

type quoteServiceFixture struct {
	quoteService QuoteService
	cartService  CartService
	quoteRepo    repository.QuoteRepository
	notifier     *recordingNotifier
	user         *model.User
	product      *model.Product
	db           *gorm.DB
}

func setupQuoteServiceTest(t *testing.T, withProfile bool) *quoteServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	quoteRepo := repository.NewQuoteRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(newMemoryCartStore(), productRepo)
	notifier := &recordingNotifier{}
	quoteService := NewQuoteService(quoteRepo, profileRepo, cartService, notifier)

	user := &model.User{Email: "buyer@example.com", PasswordHash: "hash"}
	testDB.Create(user)

	if withProfile {
		testDB.Create(&model.Profile{UserID: user.ID, Name: "Buyer", Phone: "9876543210"})
	}

	category := &model.Category{Name: "Duffels"}
	testDB.Create(category)

	product := &model.Product{
		CategoryID: category.ID,
		Name:       "Travel Duffel",
		MOQ:        25,
		SKU:        "TD-2001",
		IsActive:   true,
	}
	testDB.Create(product)

	return &quoteServiceFixture{
		quoteService: quoteService,
		cartService:  cartService,
		quoteRepo:    quoteRepo,
		notifier:     notifier,
		user:         user,
		product:      product,
		db:           testDB,
	}
}

func TestQuoteService_CreateQuoteFromCart_Success(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{
		ProductID:          f.product.ID,
		Quantity:           100,
		CustomizationNotes: "Add logo print",
		SelectedColor:      "Black",
	}))

	quote, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "Deliver by March")
	require.NoError(t, err)
	assert.Equal(t, model.QuoteStatusPending, quote.Status)
	assert.Equal(t, "Deliver by March", quote.Notes)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, f.product.ID, quote.Items[0].ProductID)
	assert.Equal(t, 100, quote.Items[0].Quantity)
	assert.Equal(t, "Black", quote.Items[0].SelectedColor)

	// Cart is cleared on success
	lines, _ := f.cartService.GetCart(ctx, f.user.ID)
	assert.Len(t, lines, 0)
}

func TestQuoteService_CreateQuoteFromCart_ProfileRequired(t *testing.T) {
	f := setupQuoteServiceTest(t, false)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))

	_, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	assert.ErrorIs(t, err, ErrProfileRequired)

	// No quote row is written and the cart is untouched
	var count int64
	f.db.Model(&model.Quote{}).Count(&count)
	assert.Equal(t, int64(0), count)

	lines, _ := f.cartService.GetCart(ctx, f.user.ID)
	assert.Len(t, lines, 1)
}

func TestQuoteService_CreateQuoteFromCart_EmptyCart(t *testing.T) {
	f := setupQuoteServiceTest(t, true)

	_, err := f.quoteService.CreateQuoteFromCart(context.Background(), f.user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteService_CreateQuoteFromCart_ItemFailureKeepsParentAndCart(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	profileRepo := repository.NewProfileRepository(f.db)
	failingService := NewQuoteService(
		&failingItemsQuoteRepo{QuoteRepository: f.quoteRepo},
		profileRepo,
		f.cartService,
		f.notifier,
	)

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))

	_, err := failingService.CreateQuoteFromCart(ctx, f.user.ID, "")
	assert.Error(t, err)

	// The parent quote row persists without items
	var quotes []model.Quote
	f.db.Find(&quotes)
	require.Len(t, quotes, 1)
	var itemCount int64
	f.db.Model(&model.QuoteItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), itemCount)

	// The cart is retained for retry
	lines, _ := f.cartService.GetCart(ctx, f.user.ID)
	assert.Len(t, lines, 1)
}

func TestQuoteService_GetUserQuotes(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))
	_, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	require.NoError(t, err)

	quotes, err := f.quoteService.GetUserQuotes(f.user.ID)
	assert.NoError(t, err)
	assert.Len(t, quotes, 1)

	// Other users see nothing
	quotes, err = f.quoteService.GetUserQuotes(f.user.ID + 1)
	assert.NoError(t, err)
	assert.Len(t, quotes, 0)
}

func TestQuoteService_GetQuoteByID_OwnershipEnforced(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))
	quote, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	require.NoError(t, err)

	// Owner sees the quote
	found, err := f.quoteService.GetQuoteByID(f.user.ID, quote.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, quote.ID, found.ID)

	// Another user gets not-found, not forbidden
	_, err = f.quoteService.GetQuoteByID(f.user.ID+1, quote.ID, false)
	assert.ErrorIs(t, err, ErrQuoteNotFound)

	// Admin sees any quote
	found, err = f.quoteService.GetQuoteByID(f.user.ID+1, quote.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, quote.ID, found.ID)
}

func TestQuoteService_UpdateStatus_Success(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))
	quote, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	require.NoError(t, err)

	err = f.quoteService.UpdateStatus(quote.ID, model.QuoteStatusReviewed)
	assert.NoError(t, err)

	updated, _ := f.quoteRepo.FindByID(quote.ID)
	assert.Equal(t, model.QuoteStatusReviewed, updated.Status)

	// The owner was notified
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, model.QuoteStatusReviewed, f.notifier.events[0])
	assert.Equal(t, f.user.ID, f.notifier.users[0])
}

func TestQuoteService_UpdateStatus_InvalidStatus(t *testing.T) {
	f := setupQuoteServiceTest(t, true)

	err := f.quoteService.UpdateStatus(1, model.QuoteStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidQuoteStatus)
}

func TestQuoteService_UpdateStatus_NotFound(t *testing.T) {
	f := setupQuoteServiceTest(t, true)

	err := f.quoteService.UpdateStatus(9999, model.QuoteStatusClosed)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestQuoteService_CloseStalePending(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))
	quote, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	require.NoError(t, err)

	// Age the quote past the cutoff
	f.db.Model(&model.Quote{}).Where("id = ?", quote.ID).
		Update("created_at", "2020-01-01 00:00:00")

	closed, err := f.quoteService.CloseStalePending(90)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	updated, _ := f.quoteRepo.FindByID(quote.ID)
	assert.Equal(t, model.QuoteStatusClosed, updated.Status)
}

func TestQuoteService_CloseStalePending_SkipsRecentAndNonPending(t *testing.T) {
	f := setupQuoteServiceTest(t, true)
	ctx := context.Background()

	require.NoError(t, f.cartService.AddLine(ctx, f.user.ID, AddLineInput{ProductID: f.product.ID, Quantity: 50}))
	_, err := f.quoteService.CreateQuoteFromCart(ctx, f.user.ID, "")
	require.NoError(t, err)

	closed, err := f.quoteService.CloseStalePending(90)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), closed)
}
