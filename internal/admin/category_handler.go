package admin

import (
	"strings"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	MandatoryProof bool   `json:"mandatory_proof"`
}

type CreateCategoryRequest struct {
	Name           string `json:"name"`
	MandatoryProof *bool  `json:"mandatory_proof"`
}

type UpdateCategoryRequest struct {
	Name           *string `json:"name"`
	MandatoryProof *bool   `json:"mandatory_proof"`
}

func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O nome da categoria não pode ficar vazio")
		}

		// Comprovante obrigatório por padrão, a exceção é que precisa ser pedida
		category := models.Category{Name: body.Name, MandatoryProof: true}
		if body.MandatoryProof != nil {
			category.MandatoryProof = *body.MandatoryProof
		}

		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a categoria")
		}

		return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
			ID:             category.ID,
			Name:           category.Name,
			MandatoryProof: category.MandatoryProof,
		})
	}
}

func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as categorias")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			res = append(res, CategoryResponse{ID: cat.ID, Name: cat.Name, MandatoryProof: cat.MandatoryProof})
		}
		return c.JSON(res)
	}
}

func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "O nome da categoria não pode ficar vazio")
			}
			category.Name = name
		}
		if body.MandatoryProof != nil {
			category.MandatoryProof = *body.MandatoryProof
		}

		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a categoria")
		}

		return c.JSON(fiber.Map{"message": "Categoria atualizada com sucesso!"})
	}
}

func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var transactions int64
		database.DB.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&transactions)
		if transactions > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "A categoria possui transações registradas e não pode ser excluída")
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a categoria")
		}

		return c.JSON(fiber.Map{"message": "Categoria excluída com sucesso!"})
	}
}
