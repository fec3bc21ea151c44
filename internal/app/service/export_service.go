package service

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/internal/app/repository"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Quotes"

// ExportService renders admin reports as XLSX workbooks.
type ExportService interface {
	ExportQuotes() ([]byte, string, error)
}

type exportService struct {
	quoteRepo repository.QuoteRepository
}

func NewExportService(quoteRepo repository.QuoteRepository) ExportService {
	return &exportService{quoteRepo: quoteRepo}
}

// ExportQuotes writes every quote as one row per line item. The returned
// filename carries a timestamp so repeated exports never collide.
func (s *exportService) ExportQuotes() ([]byte, string, error) {
	logger.Info("Exporting quotes to XLSX")

	quotes, err := s.quoteRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch quotes for export", err)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Quote ID", "Status", "Requested At", "Customer", "Email", "Phone",
		"Product", "SKU", "Color", "Quantity", "Customization Notes", "Quote Notes",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, "", err
		}
	}

	rowIndex := 2
	for _, quote := range quotes {
		customer, email, phone := contactColumns(&quote)

		for _, item := range quote.Items {
			values := []interface{}{
				quote.ID,
				string(quote.Status),
				quote.CreatedAt.Format("2006-01-02 15:04"),
				customer,
				email,
				phone,
				item.Product.Name,
				item.Product.SKU,
				item.SelectedColor,
				item.Quantity,
				item.CustomizationNotes,
				quote.Notes,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
				if err != nil {
					return nil, "", err
				}
				if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
					return nil, "", err
				}
			}
			rowIndex++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write XLSX export", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("quotes-%s.xlsx", time.Now().Format("20060102-150405"))

	logger.Info("Quote export generated", map[string]interface{}{
		"quote_count": len(quotes),
		"row_count":   rowIndex - 2,
		"filename":    filename,
	})

	return buf.Bytes(), filename, nil
}

func contactColumns(quote *model.Quote) (name, email, phone string) {
	email = quote.User.Email
	if quote.User.Profile != nil {
		name = quote.User.Profile.Name
		phone = quote.User.Profile.Phone
	}
	if name == "" {
		name = "User " + strconv.FormatUint(uint64(quote.UserID), 10)
	}
	return name, email, phone
}
