package notification

import (
	"time"

	"tesouraria-backend/internal/auth"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateNotificationRequest struct {
	Title           string                 `json:"title"`
	Body            string                 `json:"body"`
	Date            string                 `json:"date"` // "2025-12-09 08:00"
	Repeat          bool                   `json:"repeat"`
	RepeatFrequency models.RepeatFrequency `json:"repeat_frequency"`
}

type NotificationResponse struct {
	ID                     uint                   `json:"id"`
	Title                  string                 `json:"title"`
	Body                   string                 `json:"body"`
	Date                   string                 `json:"date"`
	IsRead                 bool                   `json:"is_read"`
	Repeat                 bool                   `json:"repeat"`
	RepeatFrequency        models.RepeatFrequency `json:"repeat_frequency"`
	NextRepeatDate         *string                `json:"next_repeat_date"`
	OriginalNotificationID *uint                  `json:"original_notification_id"`
}

const dateTimeLayout = "2006-01-02 15:04"

func toResponse(n *models.Notification) NotificationResponse {
	var next *string
	if n.NextRepeatDate != nil {
		formatted := n.NextRepeatDate.Format(dateTimeLayout)
		next = &formatted
	}
	return NotificationResponse{
		ID:                     n.ID,
		Title:                  n.Title,
		Body:                   n.Body,
		Date:                   n.Date.Format(dateTimeLayout),
		IsRead:                 n.IsRead,
		Repeat:                 n.Repeat,
		RepeatFrequency:        n.RepeatFrequency,
		NextRepeatDate:         next,
		OriginalNotificationID: n.OriginalNotificationID,
	}
}

// GET /api/notifications
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var notifications []models.Notification
		err = database.DB.
			Where("created_by_id = ?", user.ID).
			Order("created_at DESC, date DESC").
			Find(&notifications).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as notificações")
		}

		resp := make([]NotificationResponse, 0, len(notifications))
		for i := range notifications {
			resp = append(resp, toResponse(&notifications[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/notifications
func CreateNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateNotificationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Title == "" || body.Body == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Título e mensagem são obrigatórios")
		}

		date, err := time.Parse(dateTimeLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data inválida (use AAAA-MM-DD HH:MM)")
		}

		n := models.Notification{
			Title:           body.Title,
			Body:            body.Body,
			Date:            date,
			Repeat:          body.Repeat,
			RepeatFrequency: models.RepeatNone,
			CreatedByID:     user.ID,
		}

		if body.Repeat {
			next, err := NextDate(date, body.RepeatFrequency)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Frequência de repetição inválida")
			}
			n.RepeatFrequency = body.RepeatFrequency
			n.NextRepeatDate = &next
		}

		if err := database.DB.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a notificação")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&n))
	}
}

// PUT /api/notifications/:id/read
func MarkNotificationReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var n models.Notification
		if err := database.DB.First(&n, "id = ? AND created_by_id = ?", c.Params("id"), user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notificação não encontrada")
		}

		if err := database.DB.Model(&n).Update("is_read", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível marcar como lida")
		}

		return c.JSON(fiber.Map{"message": "Notificação marcada como lida"})
	}
}

// DELETE /api/notifications/:id
func DeleteNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var n models.Notification
		if err := database.DB.First(&n, "id = ? AND created_by_id = ?", c.Params("id"), user.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notificação não encontrada")
		}

		if err := database.DB.Delete(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a notificação")
		}

		return c.JSON(fiber.Map{"message": "Notificação excluída com sucesso!"})
	}
}
