package admin

import (
	"strings"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FieldResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Churches  int64  `json:"churches"`
	CreatedAt string `json:"created_at"`
}

type CreateFieldRequest struct {
	Name string `json:"name"`
}

type UpdateFieldRequest struct {
	Name *string `json:"name"`
}

// ----------------------------------------
// CRUD de campos
// ----------------------------------------

func CreateFieldHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFieldRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O nome do campo não pode ficar vazio")
		}

		field := models.Field{Name: body.Name}
		if err := database.DB.Create(&field).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o campo")
		}

		return c.Status(fiber.StatusCreated).JSON(FieldResponse{
			ID:        field.ID,
			Name:      field.Name,
			CreatedAt: field.CreatedAt.Format("02/01/2006 15:04:05"),
		})
	}
}

func ListFieldsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields []models.Field
		if err := database.DB.Order("name asc").Find(&fields).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os campos")
		}

		res := make([]FieldResponse, 0, len(fields))
		for _, f := range fields {
			var churches int64
			database.DB.Model(&models.Church{}).Where("field_id = ?", f.ID).Count(&churches)
			res = append(res, FieldResponse{
				ID:        f.ID,
				Name:      f.Name,
				Churches:  churches,
				CreatedAt: f.CreatedAt.Format("02/01/2006 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func UpdateFieldHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var field models.Field
		if err := database.DB.First(&field, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Campo não encontrado")
		}

		var body UpdateFieldRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O nome do campo não pode ficar vazio")
			}
			field.Name = name
		}

		if err := database.DB.Save(&field).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o campo")
		}

		return c.JSON(fiber.Map{"message": "Campo atualizado com sucesso!"})
	}
}

func DeleteFieldHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var field models.Field
		if err := database.DB.First(&field, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Campo não encontrado")
		}

		// Campo com igrejas não pode ser removido, a hierarquia ficaria órfã
		var churches int64
		database.DB.Model(&models.Church{}).Where("field_id = ?", field.ID).Count(&churches)
		if churches > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "O campo possui igrejas vinculadas e não pode ser excluído")
		}

		if err := database.DB.Delete(&field).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir o campo")
		}

		return c.JSON(fiber.Map{"message": "Campo excluído com sucesso!"})
	}
}
