package audit

import (
	"encoding/json"
	"fmt"

	"mapper-backend/internal/auth"
	"mapper-backend/internal/database"
	"mapper-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser resolves the acting user for an audit entry. A failed name
// lookup degrades to an empty name; it never blocks the operation being
// audited.
func CurrentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	var name string
	if userID > 0 {
		var u models.User
		if err := database.DB.Select("name").First(&u, userID).Error; err == nil {
			name = u.Name
		}
	}
	return userID, name
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns need the JSON literal "null", not an empty string.
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}

	return nil
}
