package admin

import (
	"fmt"
	"strings"
	"time"

	"tesouraria-backend/internal/cache"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ChurchResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Shepherd string `json:"shepherd"`
	Field    string `json:"field"`
	FieldID  uint   `json:"field_id"`
}

type CreateChurchRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	ShepherdID uint   `json:"shepherd_id"`
	FieldID    uint   `json:"field_id"`
}

type UpdateChurchRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	ShepherdID *uint   `json:"shepherd_id"`
	FieldID    *uint   `json:"field_id"`
}

// ChurchCache guarda a lista de igrejas por campo usada pelo formulário de
// transações. Invalidado em qualquer escrita de igreja.
var ChurchCache = cache.NewTTLCache[[]ChurchResponse](5 * time.Minute)

func toChurchResponse(ch models.Church) ChurchResponse {
	return ChurchResponse{
		ID:       ch.ID,
		Name:     ch.Name,
		Address:  ch.Address,
		Shepherd: ch.Shepherd.Name,
		Field:    ch.Field.Name,
		FieldID:  ch.FieldID,
	}
}

func CreateChurchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateChurchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O nome da igreja não pode ficar vazio")
		}

		var shepherd models.Shepherd
		if err := database.DB.First(&shepherd, "id = ?", body.ShepherdID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Pastor não encontrado")
		}

		var field models.Field
		if err := database.DB.First(&field, "id = ?", body.FieldID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Campo não encontrado")
		}

		church := models.Church{
			Name:       body.Name,
			Address:    strings.TrimSpace(body.Address),
			ShepherdID: shepherd.ID,
			FieldID:    field.ID,
		}
		if err := database.DB.Create(&church).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a igreja")
		}
		ChurchCache.Clear()

		church.Shepherd = shepherd
		church.Field = field
		return c.Status(fiber.StatusCreated).JSON(toChurchResponse(church))
	}
}

func ListChurchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Shepherd").Preload("Field").Order("name asc")

		var fieldID uint
		if raw := c.Query("field_id"); raw != "" {
			if _, err := fmt.Sscan(raw, &fieldID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Campo inválido")
			}
			q = q.Where("field_id = ?", fieldID)
		}

		var churches []models.Church
		if err := q.Find(&churches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as igrejas")
		}

		res := make([]ChurchResponse, 0, len(churches))
		for _, ch := range churches {
			res = append(res, toChurchResponse(ch))
		}
		return c.JSON(res)
	}
}

func UpdateChurchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var church models.Church
		if err := database.DB.First(&church, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Igreja não encontrada")
		}

		var body UpdateChurchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O nome da igreja não pode ficar vazio")
			}
			church.Name = name
		}
		if body.Address != nil {
			church.Address = strings.TrimSpace(*body.Address)
		}
		if body.ShepherdID != nil {
			var shepherd models.Shepherd
			if err := database.DB.First(&shepherd, "id = ?", *body.ShepherdID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Pastor não encontrado")
			}
			church.ShepherdID = shepherd.ID
		}
		if body.FieldID != nil {
			var field models.Field
			if err := database.DB.First(&field, "id = ?", *body.FieldID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Campo não encontrado")
			}
			church.FieldID = field.ID
		}

		if err := database.DB.Save(&church).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a igreja")
		}
		ChurchCache.Clear()

		return c.JSON(fiber.Map{"message": "Igreja atualizada com sucesso!"})
	}
}

func DeleteChurchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var church models.Church
		if err := database.DB.First(&church, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Igreja não encontrada")
		}

		var transactions int64
		database.DB.Model(&models.Transaction{}).Where("church_id = ?", church.ID).Count(&transactions)
		if transactions > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "A igreja possui transações registradas e não pode ser excluída")
		}

		if err := database.DB.Delete(&church).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a igreja")
		}
		ChurchCache.Clear()

		return c.JSON(fiber.Map{"message": "Igreja excluída com sucesso!"})
	}
}
