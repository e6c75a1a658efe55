package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Supplier spreadsheet column headers recognized by the importer. Header
// matching is case-insensitive and tolerant of surrounding whitespace.
var importHeaderAliases = map[string]string{
	"상품코드":   "code",
	"상품명":    "supplier_name",
	"공급가":    "supplier_price",
	"판매가":    "market_price",
	"마켓판매가격": "market_price",
	"배송비":    "shipping_fee",
	"옵션":     "option_text",
	"이미지":    "image_url",
	"사용url":  "image_url",
	"키워드":    "keywords",
	"원산지":    "origin",
	"브랜드":    "brand",
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// POST /api/admin/products/import (multipart, file field: file)
// Bulk-imports products from a supplier spreadsheet. Rows with an existing
// product code are skipped, not updated.
func BulkImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not open file")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read sheet: "+err.Error())
		}
		if len(rows) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no data rows")
		}

		// Resolve the header row into field positions.
		fieldCols := map[string]int{}
		for i, h := range rows[0] {
			key := strings.ToLower(strings.TrimSpace(h))
			if field, ok := importHeaderAliases[key]; ok {
				if _, seen := fieldCols[field]; !seen {
					fieldCols[field] = i
				}
			}
		}
		if _, ok := fieldCols["code"]; !ok {
			return fiber.NewError(fiber.StatusBadRequest, "header row must contain a 상품코드 column")
		}
		if _, ok := fieldCols["supplier_name"]; !ok {
			return fiber.NewError(fiber.StatusBadRequest, "header row must contain a 상품명 column")
		}

		result := ImportResult{Errors: []string{}}

		for rowNum, row := range rows[1:] {
			cell := func(field string) string {
				i, ok := fieldCols[field]
				if !ok || i >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[i])
			}

			code := cell("code")
			name := cell("supplier_name")
			if code == "" && name == "" {
				continue // blank row
			}
			if code == "" || name == "" {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing code or name", rowNum+2))
				continue
			}

			var existing models.Product
			if err := database.DB.Where("code = ?", code).First(&existing).Error; err == nil {
				result.Skipped++
				continue
			}

			p := models.Product{
				Code:          code,
				SupplierName:  name,
				SupplierPrice: parseNumericCell(cell("supplier_price")),
				MarketPrice:   parseNumericCell(cell("market_price")),
				ShippingFee:   parseNumericCell(cell("shipping_fee")),
				OptionText:    cell("option_text"),
				ImageURL:      cell("image_url"),
				Keywords:      cell("keywords"),
				Origin:        cell("origin"),
				Brand:         cell("brand"),
			}
			if err := database.DB.Create(&p).Error; err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): database error - %v", rowNum+2, code, err))
				continue
			}
			result.Imported++
		}

		return c.JSON(result)
	}
}

func parseNumericCell(v string) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "원")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
