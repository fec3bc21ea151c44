package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mdehtemam/bagquote-backend/config"
	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/db"
	"github.com/mdehtemam/bagquote-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Catalog importer. Reads a product sheet exported from the sales team's
// master workbook and loads it into the database.
//
// Expected columns, in order:
//
//	category | name | description | moq | rate | material | size | capacity | sku | image_url | colors
//
// colors is a comma-separated list; each color becomes a product variant.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, categories, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Categories to import: %d\n", len(categories))
	fmt.Printf("Products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	gormDB := db.GetDB()

	// Upsert categories by name, then resolve product category ids.
	categoryIDs := make(map[string]uint)
	for _, name := range categories {
		var category model.Category
		err := gormDB.Where("name = ?", name).First(&category).Error
		if err != nil {
			category = model.Category{Name: name}
			if err := gormDB.Create(&category).Error; err != nil {
				log.Fatal("Failed to create category:", err)
			}
		}
		categoryIDs[name] = category.ID
	}

	imported := 0
	for i := range products {
		products[i].Product.CategoryID = categoryIDs[products[i].CategoryName]
		if err := gormDB.Create(&products[i].Product).Error; err != nil {
			fmt.Printf("Skipping %s (%s): %v\n", products[i].Product.Name, products[i].Product.SKU, err)
			continue
		}
		imported++
		if imported%100 == 0 {
			fmt.Printf("Imported %d products...\n", imported)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

type catalogRow struct {
	CategoryName string
	Product      model.Product
}

func readCatalogFromXLSX(filePath string) ([]catalogRow, []string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []catalogRow
	seenCategories := make(map[string]bool)
	var categories []string
	seenSKUs := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 4 {
			skippedCount++
			continue
		}

		categoryName := strings.TrimSpace(cell(row, 0))
		name := strings.TrimSpace(cell(row, 1))
		description := strings.TrimSpace(cell(row, 2))
		moqStr := strings.TrimSpace(cell(row, 3))
		rateStr := strings.TrimSpace(cell(row, 4))
		material := strings.TrimSpace(cell(row, 5))
		size := strings.TrimSpace(cell(row, 6))
		capacity := strings.TrimSpace(cell(row, 7))
		sku := strings.TrimSpace(cell(row, 8))
		imageURL := strings.TrimSpace(cell(row, 9))
		colorsStr := strings.TrimSpace(cell(row, 10))

		if categoryName == "" || name == "" {
			skippedCount++
			continue
		}

		moq, err := strconv.Atoi(moqStr)
		if err != nil || moq <= 0 {
			moq = 1
		}

		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			rate = 0
		}

		if sku == "" {
			sku = util.GenerateSKU(name)
		}
		if seenSKUs[sku] {
			skippedCount++
			continue
		}
		seenSKUs[sku] = true

		product := model.Product{
			Name:        name,
			Description: description,
			MOQ:         moq,
			Rate:        rate,
			Material:    material,
			Size:        size,
			Capacity:    capacity,
			SKU:         sku,
			ImageURL:    imageURL,
			IsActive:    true,
		}

		for _, color := range strings.Split(colorsStr, ",") {
			color = strings.TrimSpace(color)
			if color == "" {
				continue
			}
			product.Variants = append(product.Variants, model.ProductVariant{
				Color: color,
				SKU:   util.GenerateSKU(name + " " + color),
			})
		}

		if !seenCategories[categoryName] {
			seenCategories[categoryName] = true
			categories = append(categories, categoryName)
		}

		products = append(products, catalogRow{
			CategoryName: categoryName,
			Product:      product,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, categories, nil
}

// cell returns row[i] or "" when the row is short. XLSX rows omit trailing
// empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
