package accesslog

import (
	"fmt"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AccessLogResponse struct {
	ID        uint                `json:"id"`
	UserID    uint                `json:"user_id"`
	UserName  string              `json:"user_name"`
	Action    models.AccessAction `json:"action"`
	Timestamp string              `json:"timestamp"`
	IPAddress string              `json:"ip_address"`
}

// GET /api/admin/access-logs?user_id=&action=
func ListAccessLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AccessLog{}).Preload("User")

		if userIDStr := c.Query("user_id"); userIDStr != "" {
			var uid uint
			if _, err := fmt.Sscan(userIDStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}

		if action := c.Query("action"); action != "" {
			dbq = dbq.Where("action = ?", action)
		}

		var logs []models.AccessLog
		if err := dbq.Order("timestamp DESC").Limit(500).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os logs de acesso")
		}

		resp := make([]AccessLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AccessLogResponse{
				ID:        l.ID,
				UserID:    l.UserID,
				UserName:  l.User.FullName(),
				Action:    l.Action,
				Timestamp: l.Timestamp.Format("02/01/2006 15:04:05"),
				IPAddress: l.IPAddress,
			})
		}

		return c.JSON(resp)
	}
}
