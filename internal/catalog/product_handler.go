package catalog

import (
	"fmt"
	"log"
	"strings"

	"mapper-backend/internal/audit"
	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID            uint    `json:"id"`
	Code          string  `json:"code"`
	SupplierName  string  `json:"supplier_name"`
	FinalName     string  `json:"final_name"`
	SupplierPrice float64 `json:"supplier_price"`
	MarketPrice   float64 `json:"market_price"`
	ShippingFee   float64 `json:"shipping_fee"`
	OptionText    string  `json:"option_text"`
	ImageURL      string  `json:"image_url"`
	Keywords      string  `json:"keywords"`
	Origin        string  `json:"origin"`
	Brand         string  `json:"brand"`
}

type CreateProductRequest struct {
	Code          string  `json:"code"`
	SupplierName  string  `json:"supplier_name"`
	FinalName     string  `json:"final_name"`
	SupplierPrice float64 `json:"supplier_price"`
	MarketPrice   float64 `json:"market_price"`
	ShippingFee   float64 `json:"shipping_fee"`
	OptionText    string  `json:"option_text"`
	ImageURL      string  `json:"image_url"`
	Keywords      string  `json:"keywords"`
	Origin        string  `json:"origin"`
	Brand         string  `json:"brand"`
}

type UpdateProductRequest struct {
	SupplierName  *string  `json:"supplier_name"`
	FinalName     *string  `json:"final_name"`
	SupplierPrice *float64 `json:"supplier_price"`
	MarketPrice   *float64 `json:"market_price"`
	ShippingFee   *float64 `json:"shipping_fee"`
	OptionText    *string  `json:"option_text"`
	ImageURL      *string  `json:"image_url"`
	Keywords      *string  `json:"keywords"`
	Origin        *string  `json:"origin"`
	Brand         *string  `json:"brand"`
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		SupplierName:  p.SupplierName,
		FinalName:     p.FinalName,
		SupplierPrice: p.SupplierPrice,
		MarketPrice:   p.MarketPrice,
		ShippingFee:   p.ShippingFee,
		OptionText:    p.OptionText,
		ImageURL:      p.ImageURL,
		Keywords:      p.Keywords,
		Origin:        p.Origin,
		Brand:         p.Brand,
	}
}

// GET /api/products?code=P123&q=수저
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if code := strings.TrimSpace(c.Query("code")); code != "" {
			dbq = dbq.Where("code = ?", code)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			dbq = dbq.Where("supplier_name ILIKE ? OR final_name ILIKE ?", like, like)
		}

		var products []models.Product
		if err := dbq.Order("code asc").Limit(500).Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, productResponse(p))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Code = strings.TrimSpace(body.Code)
		body.SupplierName = strings.TrimSpace(body.SupplierName)
		if body.Code == "" || body.SupplierName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code and supplier_name are required")
		}

		var existing models.Product
		if err := database.DB.Where("code = ?", body.Code).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "product code already exists")
		}

		p := models.Product{
			Code:          body.Code,
			SupplierName:  body.SupplierName,
			FinalName:     strings.TrimSpace(body.FinalName),
			SupplierPrice: body.SupplierPrice,
			MarketPrice:   body.MarketPrice,
			ShippingFee:   body.ShippingFee,
			OptionText:    body.OptionText,
			ImageURL:      body.ImageURL,
			Keywords:      body.Keywords,
			Origin:        body.Origin,
			Brand:         body.Brand,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("product %s created", p.Code),
			After:       productResponse(p),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(productResponse(p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		before := productResponse(p)

		if body.SupplierName != nil {
			name := strings.TrimSpace(*body.SupplierName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "supplier_name cannot be empty")
			}
			p.SupplierName = name
		}
		if body.FinalName != nil {
			p.FinalName = strings.TrimSpace(*body.FinalName)
		}
		if body.SupplierPrice != nil {
			p.SupplierPrice = *body.SupplierPrice
		}
		if body.MarketPrice != nil {
			p.MarketPrice = *body.MarketPrice
		}
		if body.ShippingFee != nil {
			p.ShippingFee = *body.ShippingFee
		}
		if body.OptionText != nil {
			p.OptionText = *body.OptionText
		}
		if body.ImageURL != nil {
			p.ImageURL = *body.ImageURL
		}
		if body.Keywords != nil {
			p.Keywords = *body.Keywords
		}
		if body.Origin != nil {
			p.Origin = *body.Origin
		}
		if body.Brand != nil {
			p.Brand = *body.Brand
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("product %s updated", p.Code),
			Before:      before,
			After:       productResponse(p),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.JSON(productResponse(p))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("product %s deleted", p.Code),
			Before:      productResponse(p),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
