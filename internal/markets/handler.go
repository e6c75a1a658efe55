package markets

import (
	"fmt"
	"log"
	"strings"

	"mapper-backend/internal/audit"
	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MarketResponse struct {
	ID             uint    `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commission_rate"`
	MarginRate     float64 `json:"margin_rate"`
	DiscountRate   float64 `json:"discount_rate"`
	ShippingMethod string  `json:"shipping_method"`
	Active         bool    `json:"active"`
}

type CreateMarketRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commission_rate"`
	MarginRate     float64 `json:"margin_rate"`
	DiscountRate   float64 `json:"discount_rate"`
	ShippingMethod string  `json:"shipping_method"`
}

type UpdateMarketRequest struct {
	Name           *string  `json:"name"`
	CommissionRate *float64 `json:"commission_rate"`
	MarginRate     *float64 `json:"margin_rate"`
	DiscountRate   *float64 `json:"discount_rate"`
	ShippingMethod *string  `json:"shipping_method"`
	Active         *bool    `json:"active"`
}

func marketResponse(m models.Market) MarketResponse {
	return MarketResponse{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		CommissionRate: m.CommissionRate,
		MarginRate:     m.MarginRate,
		DiscountRate:   m.DiscountRate,
		ShippingMethod: m.ShippingMethod,
		Active:         m.Active,
	}
}

// GET /api/markets
func ListMarketsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var markets []models.Market
		if err := database.DB.Order("code asc").Find(&markets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list markets")
		}

		resp := make([]MarketResponse, 0, len(markets))
		for _, m := range markets {
			resp = append(resp, marketResponse(m))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/markets
func CreateMarketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMarketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Code = strings.TrimSpace(body.Code)
		body.Name = strings.TrimSpace(body.Name)
		if body.Code == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code and name are required")
		}

		method := body.ShippingMethod
		if method == "" {
			method = "standard"
		}
		if method != "standard" && method != "free" {
			return fiber.NewError(fiber.StatusBadRequest, "shipping_method must be standard or free")
		}

		var existing models.Market
		if err := database.DB.Where("code = ?", body.Code).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "market code already exists")
		}

		m := models.Market{
			Code:           body.Code,
			Name:           body.Name,
			CommissionRate: body.CommissionRate,
			MarginRate:     body.MarginRate,
			DiscountRate:   body.DiscountRate,
			ShippingMethod: method,
			Active:         true,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create market")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "market",
			EntityID:    m.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("market %s created", m.Code),
			After:       marketResponse(m),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(marketResponse(m))
	}
}

// PUT /api/admin/markets/:id
func UpdateMarketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.Market
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "market not found")
		}

		var body UpdateMarketRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		before := marketResponse(m)

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			m.Name = name
		}
		if body.CommissionRate != nil {
			m.CommissionRate = *body.CommissionRate
		}
		if body.MarginRate != nil {
			m.MarginRate = *body.MarginRate
		}
		if body.DiscountRate != nil {
			m.DiscountRate = *body.DiscountRate
		}
		if body.ShippingMethod != nil {
			if *body.ShippingMethod != "standard" && *body.ShippingMethod != "free" {
				return fiber.NewError(fiber.StatusBadRequest, "shipping_method must be standard or free")
			}
			m.ShippingMethod = *body.ShippingMethod
		}
		if body.Active != nil {
			m.Active = *body.Active
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update market")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "market",
			EntityID:    m.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("market %s updated", m.Code),
			Before:      before,
			After:       marketResponse(m),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.JSON(marketResponse(m))
	}
}

// DELETE /api/admin/markets/:id
func DeleteMarketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.Market
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "market not found")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete market")
		}

		userID, userName := audit.CurrentUser(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "market",
			EntityID:    m.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("market %s deleted", m.Code),
			Before:      marketResponse(m),
		}); logErr != nil {
			log.Printf("audit log not saved: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
