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

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewCategoryService(repository.NewCategoryRepository(testDB)), testDB
}

func TestCategoryService_CreateAndList(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	_, err := categoryService.CreateCategory("Travel Bags", "Bags for business trips", "")
	require.NoError(t, err)
	_, err = categoryService.CreateCategory("Backpacks", "", "")
	require.NoError(t, err)

	categories, err := categoryService.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Sorted by name
	assert.Equal(t, "Backpacks", categories[0].Name)
	assert.Equal(t, "Travel Bags", categories[1].Name)
}

func TestCategoryService_GetCategoryByID_NotFound(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	_, err := categoryService.GetCategoryByID(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_Empty(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Short Lived", "", "")
	require.NoError(t, err)

	require.NoError(t, categoryService.DeleteCategory(category.ID))

	_, err = categoryService.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_WithProductsBlocked(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Occupied", "", "")
	require.NoError(t, err)

	testDB.Create(&model.Product{
		CategoryID: category.ID,
		Name:       "Resident Bag",
		SKU:        "RB-1",
		IsActive:   true,
	})

	err = categoryService.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotEmpty)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	err := categoryService.DeleteCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
