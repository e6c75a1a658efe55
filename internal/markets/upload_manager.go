package markets

import (
	"fmt"
	"strings"

	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Upload strategy: one business group must never list the same product twice,
// and successive listings of a product across business groups rotate through
// the candidate names and images so listings do not look machine-cloned.

// UploadStrategy is the name/image assignment for one product upload.
type UploadStrategy struct {
	NameIndex  int    `json:"name_index"`
	ImageIndex int    `json:"image_index"`
	StrategyID string `json:"strategy_id"`
}

// CheckBusinessDuplicate reports whether a business group already uploaded a
// product.
func CheckBusinessDuplicate(businessNumber, productCode string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.UploadRecord{}).
		Where("business_number = ? AND product_code = ?", businessNumber, productCode).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("duplicate check failed: %w", err)
	}
	return count > 0, nil
}

// NextStrategy assigns the lowest name/image indices not yet used for this
// product across all business groups.
func NextStrategy(productCode string, nameCount, imageCount int) (UploadStrategy, error) {
	var records []models.UploadRecord
	err := database.DB.
		Where("product_code = ?", productCode).
		Find(&records).Error
	if err != nil {
		return UploadStrategy{}, fmt.Errorf("could not load upload records: %w", err)
	}

	usedNames := make(map[int]bool, len(records))
	usedImages := make(map[int]bool, len(records))
	for _, r := range records {
		usedNames[r.NameIndex] = true
		usedImages[r.ImageIndex] = true
	}

	strategy := UploadStrategy{
		NameIndex:  nextFreeIndex(usedNames, nameCount),
		ImageIndex: nextFreeIndex(usedImages, imageCount),
	}
	strategy.StrategyID = fmt.Sprintf("%s-n%d-i%d", productCode, strategy.NameIndex, strategy.ImageIndex)
	return strategy, nil
}

// nextFreeIndex picks the smallest unused index; when every candidate has
// been used it wraps to the least-recently assignable one (used count modulo).
func nextFreeIndex(used map[int]bool, count int) int {
	if count <= 0 {
		return 0
	}
	for i := 0; i < count; i++ {
		if !used[i] {
			return i
		}
	}
	return len(used) % count
}

// RecordUpload persists a completed listing for duplicate checks and
// strategy rotation.
func RecordUpload(businessNumber, productCode, marketCode, accountID string, strategy UploadStrategy) error {
	rec := models.UploadRecord{
		BusinessNumber: businessNumber,
		ProductCode:    productCode,
		MarketCode:     marketCode,
		AccountID:      accountID,
		NameIndex:      strategy.NameIndex,
		ImageIndex:     strategy.ImageIndex,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("could not record upload: %w", err)
	}
	return nil
}

type UploadCheckRequest struct {
	BusinessNumber string `json:"business_number"`
	ProductCode    string `json:"product_code"`
	NameCount      int    `json:"name_count"`
	ImageCount     int    `json:"image_count"`
}

// POST /api/uploads/check — duplicate check plus strategy assignment for a
// pending listing.
func CheckUploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UploadCheckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.BusinessNumber = strings.TrimSpace(body.BusinessNumber)
		body.ProductCode = strings.TrimSpace(body.ProductCode)
		if body.BusinessNumber == "" || body.ProductCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "business_number and product_code are required")
		}

		dup, err := CheckBusinessDuplicate(body.BusinessNumber, body.ProductCode)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if dup {
			return c.JSON(fiber.Map{"duplicate": true})
		}

		strategy, err := NextStrategy(body.ProductCode, body.NameCount, body.ImageCount)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"duplicate": false,
			"strategy":  strategy,
		})
	}
}

type RecordUploadRequest struct {
	BusinessNumber string `json:"business_number"`
	ProductCode    string `json:"product_code"`
	MarketCode     string `json:"market_code"`
	AccountID      string `json:"account_id"`
	NameIndex      int    `json:"name_index"`
	ImageIndex     int    `json:"image_index"`
}

// POST /api/uploads — record a completed listing.
func RecordUploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordUploadRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.BusinessNumber = strings.TrimSpace(body.BusinessNumber)
		body.ProductCode = strings.TrimSpace(body.ProductCode)
		if body.BusinessNumber == "" || body.ProductCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "business_number and product_code are required")
		}

		strategy := UploadStrategy{NameIndex: body.NameIndex, ImageIndex: body.ImageIndex}
		if err := RecordUpload(body.BusinessNumber, body.ProductCode, body.MarketCode, body.AccountID, strategy); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.SendStatus(fiber.StatusCreated)
	}
}
