package auth

import (
	"log"
	"strings"

	"tesouraria-backend/internal/accesslog"
	"tesouraria-backend/internal/config"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// POST /api/auth/register-admin — bootstrap do primeiro administrador
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.FirstName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome, email e senha são obrigatórios")
		}

		// Só permite criar o admin inicial uma vez
		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Já existe um administrador cadastrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			FirstName:       body.FirstName,
			LastName:        body.LastName,
			Email:           body.Email,
			PasswordHash:    string(hash),
			Role:            models.RoleAdmin,
			PasswordChanged: true,
			IsActive:        true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// POST /api/auth/login — autenticação por email e senha
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Usuário desativado. Entre em contato com o administrador.")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		if err := accesslog.Record(&user, models.AccessActionLogin, c.IP()); err != nil {
			log.Println("Erro ao gravar log de acesso:", err)
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":               user.ID,
				"name":             user.FullName(),
				"email":            user.Email,
				"role":             user.Role,
				"password_changed": user.PasswordChanged,
			},
		})
	}
}

// POST /api/auth/logout — apenas registra o evento, o token expira sozinho
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		if err := accesslog.Record(user, models.AccessActionLogout, c.IP()); err != nil {
			log.Println("Erro ao gravar log de acesso:", err)
		}

		return c.JSON(fiber.Map{
			"message": "Você saiu do sistema com sucesso!",
		})
	}
}

// POST /api/auth/change-password — única rota autenticada liberada antes
// da troca da senha padrão
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Senha atual incorreta")
		}

		if len(body.NewPassword) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "A nova senha deve ter pelo menos 8 caracteres")
		}
		if body.NewPassword != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "As senhas não coincidem")
		}
		if body.NewPassword == body.CurrentPassword {
			return fiber.NewError(fiber.StatusBadRequest, "A nova senha deve ser diferente da atual")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user.PasswordHash = string(hash)
		user.PasswordChanged = true
		if err := database.DB.Model(user).Select("password_hash", "password_changed").Updates(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a senha")
		}

		return c.JSON(fiber.Map{
			"message": "Senha alterada com sucesso! Faça login novamente com sua nova senha.",
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		fields := make([]fiber.Map, 0, len(user.Fields))
		for _, f := range user.Fields {
			fields = append(fields, fiber.Map{"id": f.ID, "name": f.Name})
		}

		return c.JSON(fiber.Map{
			"user_id":          user.ID,
			"name":             user.FullName(),
			"email":            user.Email,
			"role":             user.Role,
			"password_changed": user.PasswordChanged,
			"fields":           fields,
		})
	}
}
