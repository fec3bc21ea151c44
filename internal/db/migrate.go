package db

import (
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.UserRole{},
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.ProductImage{},
		&model.Quote{},
		&model.QuoteItem{},
		&model.Contact{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the baseline category set if the table is empty
func Seed() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding category data...")

	categories := []model.Category{
		{Name: "Backpacks", Description: "Corporate backpacks and bags", Icon: "backpack"},
		{Name: "Shoulder Bags", Description: "Promotional shoulder bags", Icon: "shoulder-bag"},
		{Name: "Trolley Bags", Description: "Travel and luggage bags", Icon: "trolley"},
		{Name: "Sling Bags", Description: "Crossbody and sling bags", Icon: "sling"},
		{Name: "Laptop Bags", Description: "Professional laptop bags", Icon: "laptop"},
		{Name: "Tote Bags", Description: "Large capacity tote bags", Icon: "tote"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(categories),
	})
	return nil
}
