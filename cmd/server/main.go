package main

import (
	"log"
	"strings"

	"tesouraria-backend/internal/accesslog"
	"tesouraria-backend/internal/admin"
	"tesouraria-backend/internal/auth"
	"tesouraria-backend/internal/config"
	"tesouraria-backend/internal/dashboard"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
	"tesouraria-backend/internal/notification"
	"tesouraria-backend/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 5 * 1024 * 1024, // multipart com comprovante
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	// CORS: origens separadas por vírgula na variável de ambiente
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rotas públicas
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rotas autenticadas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())

	// Troca de senha fica fora da trava de primeiro login, senão o
	// usuário novo não conseguiria trocar a senha padrão
	protected.Put("/auth/change-password", auth.ChangePasswordHandler())

	// Todo o restante exige que a senha padrão já tenha sido trocada
	gated := protected.Group("")
	gated.Use(auth.RequirePasswordChanged())

	// Rotas do administrador
	adminRoutes := gated.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Campos
	adminRoutes.Post("/fields", admin.CreateFieldHandler())
	adminRoutes.Get("/fields", admin.ListFieldsHandler())
	adminRoutes.Put("/fields/:id", admin.UpdateFieldHandler())
	adminRoutes.Delete("/fields/:id", admin.DeleteFieldHandler())

	// Pastores
	adminRoutes.Post("/shepherds", admin.CreateShepherdHandler())
	adminRoutes.Get("/shepherds", admin.ListShepherdsHandler())
	adminRoutes.Put("/shepherds/:id", admin.UpdateShepherdHandler())
	adminRoutes.Delete("/shepherds/:id", admin.DeleteShepherdHandler())

	// Igrejas
	adminRoutes.Post("/churches", admin.CreateChurchHandler())
	adminRoutes.Get("/churches", admin.ListChurchesHandler())
	adminRoutes.Put("/churches/:id", admin.UpdateChurchHandler())
	adminRoutes.Delete("/churches/:id", admin.DeleteChurchHandler())

	// Categorias
	adminRoutes.Post("/categories", admin.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", admin.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", admin.DeleteCategoryHandler())

	// Usuários (tesoureiros)
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Put("/users/:id/toggle-active", admin.ToggleUserActiveHandler())
	adminRoutes.Put("/users/:id/reset-password", admin.ResetPasswordHandler())

	// Registro de acessos
	adminRoutes.Get("/access-logs", accesslog.ListAccessLogsHandler())

	// Rotas comuns (admin e tesoureiro, dentro do escopo de cada um)

	// Categorias para o formulário de transações
	gated.Get("/categories", admin.ListCategoriesHandler())

	// Transações
	gated.Post("/transactions", transaction.CreateTransactionHandler(cfg))
	gated.Get("/transactions", transaction.ListTransactionsHandler())
	gated.Get("/transactions/export-pdf", transaction.ExportPDFHandler())
	gated.Get("/transactions/export-excel", transaction.ExportExcelHandler())
	gated.Get("/transactions/:id", transaction.GetTransactionHandler())
	gated.Get("/transactions/:id/proof", transaction.ProofHandler())

	// Edição e exclusão são restritas ao administrador
	txAdmin := gated.Group("/transactions")
	txAdmin.Use(auth.RequireRole(models.RoleAdmin))
	txAdmin.Put("/:id", transaction.UpdateTransactionHandler(cfg))
	txAdmin.Delete("/:id", transaction.DeleteTransactionHandler())

	// Igrejas por campo (formulário de transações)
	gated.Get("/churches/by-field", transaction.ChurchesByFieldHandler())

	// Painel
	gated.Get("/dashboard/summary", dashboard.SummaryHandler())
	gated.Get("/dashboard/export-pdf", dashboard.ExportPDFHandler())

	// Notificações
	gated.Get("/notifications", notification.ListNotificationsHandler())
	gated.Post("/notifications", notification.CreateNotificationHandler())
	gated.Put("/notifications/:id/read", notification.MarkNotificationReadHandler())
	gated.Delete("/notifications/:id", notification.DeleteNotificationHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
