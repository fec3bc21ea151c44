package service

import (
	"testing"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *model.Category, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productService := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
	)

	category := &model.Category{Name: "Laptop Bags"}
	testDB.Create(category)

	return productService, category, testDB
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	isActive := true
	product, err := productService.CreateProduct(CreateProductInput{
		CategoryID:  category.ID,
		Name:        "Executive Laptop Bag",
		Description: "Padded 15 inch sleeve",
		MOQ:         100,
		Rate:        18.75,
		Material:    "Polyester",
		Size:        "16x12x4",
		Capacity:    "20L",
		IsActive:    &isActive,
		Variants: []VariantInput{
			{Color: "Black", SKU: "ELB-BK"},
			{Color: "Grey"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.NotEmpty(t, product.SKU)
	assert.Equal(t, 100, product.MOQ)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, "ELB-BK", product.Variants[0].SKU)
	// Variant SKU generated when omitted
	assert.NotEmpty(t, product.Variants[1].SKU)
}

func TestProductService_CreateProduct_DefaultsMOQAndActive(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	product, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Simple Tote",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, product.MOQ)
	assert.True(t, product.IsActive)
}

func TestProductService_CreateProduct_CategoryNotFound(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(CreateProductInput{
		CategoryID: 9999,
		Name:       "Orphan Product",
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_GetProductByID(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Messenger Bag",
		Variants:   []VariantInput{{Color: "Tan"}},
	})
	require.NoError(t, err)

	product, err := productService.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Messenger Bag", product.Name)
	assert.Equal(t, category.ID, product.Category.ID)
	assert.Len(t, product.Variants, 1)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts_Filters(t *testing.T) {
	productService, category, testDB := setupProductServiceTest(t)

	other := &model.Category{Name: "Gym Bags"}
	testDB.Create(other)

	_, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID, Name: "Slim Laptop Sleeve",
	})
	require.NoError(t, err)
	_, err = productService.CreateProduct(CreateProductInput{
		CategoryID: other.ID, Name: "Gym Duffel",
	})
	require.NoError(t, err)

	inactive := false
	_, err = productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID, Name: "Retired Sleeve", IsActive: &inactive,
	})
	require.NoError(t, err)

	// Active only
	products, err := productService.ListProducts(repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// By category
	products, err = productService.ListProducts(repository.ProductFilter{CategoryID: category.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// Case-insensitive search
	products, err = productService.ListProducts(repository.ProductFilter{Search: "laptop", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Slim Laptop Sleeve", products[0].Name)

	// Admin view includes inactive
	products, err = productService.ListProducts(repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestProductService_UpdateProduct_ReplacesVariants(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Convertible Backpack",
		Variants:   []VariantInput{{Color: "Black"}, {Color: "Navy"}},
	})
	require.NoError(t, err)

	updated, err := productService.UpdateProduct(created.ID, UpdateProductInput{
		Name:     "Convertible Backpack Pro",
		MOQ:      200,
		Variants: []VariantInput{{Color: "Charcoal"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Convertible Backpack Pro", updated.Name)
	assert.Equal(t, 200, updated.MOQ)
	require.Len(t, updated.Variants, 1)
	assert.Equal(t, "Charcoal", updated.Variants[0].Color)
}

func TestProductService_UpdateProduct_NilVariantsKeepsExisting(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Sling Bag",
		Variants:   []VariantInput{{Color: "Red"}},
	})
	require.NoError(t, err)

	updated, err := productService.UpdateProduct(created.ID, UpdateProductInput{
		Description: "Compact crossbody sling",
	})
	require.NoError(t, err)
	assert.Len(t, updated.Variants, 1)
}

func TestProductService_UpdateProduct_Deactivate(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Seasonal Tote",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := productService.UpdateProduct(created.ID, UpdateProductInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	_, err := productService.UpdateProduct(9999, UpdateProductInput{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Discontinued Bag",
	})
	require.NoError(t, err)

	require.NoError(t, productService.DeleteProduct(created.ID))

	_, err = productService.GetProductByID(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	err := productService.DeleteProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_AddProductImage(t *testing.T) {
	productService, category, _ := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		CategoryID: category.ID,
		Name:       "Photogenic Bag",
	})
	require.NoError(t, err)

	image, err := productService.AddProductImage(created.ID, nil, "https://cdn.example.com/pb-1.jpg", true)
	require.NoError(t, err)
	assert.NotZero(t, image.ID)
	assert.True(t, image.IsPrimary)

	product, err := productService.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Len(t, product.Images, 1)
}
