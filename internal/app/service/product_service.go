package service

import (
	"errors"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/mdehtemam/bagquote-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not available")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSKU     = errors.New("sku already exists")
)

// CreateProductInput carries everything an admin submits when creating a
// product. SKU is optional; when empty one is generated from the name.
type CreateProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	MOQ         int
	Rate        float64
	Material    string
	Size        string
	Capacity    string
	SKU         string
	ImageURL    string
	IsActive    *bool
	Variants    []VariantInput
}

type UpdateProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	MOQ         int
	Rate        float64
	Material    string
	Size        string
	Capacity    string
	ImageURL    string
	IsActive    *bool
	Variants    []VariantInput
}

type VariantInput struct {
	Color    string
	SKU      string
	ImageURL string
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(input CreateProductInput) (*model.Product, error)
	UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	AddProductImage(productID uint, variantID *uint, url string, isPrimary bool) (*model.ProductImage, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": filter.CategoryID,
		"search":      filter.Search,
		"active_only": filter.ActiveOnly,
	})

	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category_id": filter.CategoryID,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = util.GenerateSKU(input.Name)
	}

	moq := input.MOQ
	if moq <= 0 {
		moq = 1
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &model.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		MOQ:         moq,
		Rate:        input.Rate,
		Material:    input.Material,
		Size:        input.Size,
		Capacity:    input.Capacity,
		SKU:         sku,
		ImageURL:    input.ImageURL,
		IsActive:    isActive,
	}

	for _, v := range input.Variants {
		variantSKU := v.SKU
		if variantSKU == "" {
			variantSKU = util.GenerateSKU(input.Name + " " + v.Color)
		}
		product.Variants = append(product.Variants, model.ProductVariant{
			Color:    v.Color,
			SKU:      variantSKU,
			ImageURL: v.ImageURL,
		})
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
			"sku":  sku,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	return product, nil
}

// UpdateProduct overwrites the editable fields and replaces the variant set
// wholesale, matching how the admin edit form submits the full product.
func (s *productService) UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.MOQ > 0 {
		product.MOQ = input.MOQ
	}
	if input.Rate > 0 {
		product.Rate = input.Rate
	}
	if input.Material != "" {
		product.Material = input.Material
	}
	if input.Size != "" {
		product.Size = input.Size
	}
	if input.Capacity != "" {
		product.Capacity = input.Capacity
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	// Save the scalar fields without cascading the preloaded associations.
	product.Variants = nil
	product.Images = nil
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if input.Variants != nil {
		variants := make([]model.ProductVariant, 0, len(input.Variants))
		for _, v := range input.Variants {
			variantSKU := v.SKU
			if variantSKU == "" {
				variantSKU = util.GenerateSKU(product.Name + " " + v.Color)
			}
			variants = append(variants, model.ProductVariant{
				Color:    v.Color,
				SKU:      variantSKU,
				ImageURL: v.ImageURL,
			})
		}
		if err := s.productRepo.ReplaceVariants(id, variants); err != nil {
			logger.Error("Failed to replace product variants", err, map[string]interface{}{
				"product_id": id,
			})
			return nil, err
		}
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})

	return updated, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.productRepo.Delete(id)
}

func (s *productService) AddProductImage(productID uint, variantID *uint, url string, isPrimary bool) (*model.ProductImage, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	image := &model.ProductImage{
		ProductID: product.ID,
		VariantID: variantID,
		URL:       url,
		IsPrimary: isPrimary,
	}
	if err := s.productRepo.CreateImage(image); err != nil {
		return nil, err
	}

	logger.Info("Product image added", map[string]interface{}{
		"product_id": productID,
		"image_id":   image.ID,
	})

	return image, nil
}
