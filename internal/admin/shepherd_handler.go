package admin

import (
	"strings"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ShepherdResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Churches int64  `json:"churches"`
}

type CreateShepherdRequest struct {
	Name string `json:"name"`
}

type UpdateShepherdRequest struct {
	Name *string `json:"name"`
}

func CreateShepherdHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShepherdRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O nome do pastor não pode ficar vazio")
		}

		shepherd := models.Shepherd{Name: body.Name}
		if err := database.DB.Create(&shepherd).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o pastor")
		}

		return c.Status(fiber.StatusCreated).JSON(ShepherdResponse{ID: shepherd.ID, Name: shepherd.Name})
	}
}

func ListShepherdsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shepherds []models.Shepherd
		if err := database.DB.Order("name asc").Find(&shepherds).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os pastores")
		}

		res := make([]ShepherdResponse, 0, len(shepherds))
		for _, s := range shepherds {
			var churches int64
			database.DB.Model(&models.Church{}).Where("shepherd_id = ?", s.ID).Count(&churches)
			res = append(res, ShepherdResponse{ID: s.ID, Name: s.Name, Churches: churches})
		}

		return c.JSON(res)
	}
}

func UpdateShepherdHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shepherd models.Shepherd
		if err := database.DB.First(&shepherd, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pastor não encontrado")
		}

		var body UpdateShepherdRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O nome do pastor não pode ficar vazio")
			}
			shepherd.Name = name
		}

		if err := database.DB.Save(&shepherd).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o pastor")
		}

		return c.JSON(fiber.Map{"message": "Pastor atualizado com sucesso!"})
	}
}

func DeleteShepherdHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shepherd models.Shepherd
		if err := database.DB.First(&shepherd, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pastor não encontrado")
		}

		var churches int64
		database.DB.Model(&models.Church{}).Where("shepherd_id = ?", shepherd.ID).Count(&churches)
		if churches > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "O pastor possui igrejas vinculadas e não pode ser excluído")
		}

		if err := database.DB.Delete(&shepherd).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o pastor")
		}

		return c.JSON(fiber.Map{"message": "Pastor excluído com sucesso!"})
	}
}
