package transaction

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"tesouraria-backend/internal/admin"
	"tesouraria-backend/internal/auth"
	"tesouraria-backend/internal/config"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
	"tesouraria-backend/internal/report"
	"tesouraria-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PageSize: transações por página na listagem
const PageSize = 50

type TransactionResponse struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	TypeLabel string `json:"type_label"`
	Descr     string `json:"descr"`
	Category  string `json:"category"`
	Value     string `json:"value"`
	Date      string `json:"date"`
	Church    string `json:"church"`
	Field     string `json:"field"`
	User      string `json:"user"`
	HasProof  bool   `json:"has_proof"`
}

func toResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Type:      string(t.Type),
		TypeLabel: t.Type.Label(),
		Descr:     t.Descr,
		Category:  t.Category.Name,
		Value:     report.FormatBRL(t.Value),
		Date:      t.Date.Format("02/01/2006"),
		Church:    t.Church.Name,
		Field:     t.Church.Field.Name,
		User:      t.User.FullName(),
		HasProof:  t.ProofPath != "",
	}
}

// requireScope resolve o usuário e o escopo. Tesoureiro sem campos recebe
// 400 com orientação, não é tratado como erro de servidor.
func requireScope(c *fiber.Ctx) (*models.User, scope.Scope, error) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return nil, scope.Scope{}, err
	}
	sc := scope.ForUser(user)
	if sc.Empty() {
		return nil, scope.Scope{}, fiber.NewError(fiber.StatusBadRequest, scope.NoFieldsMessage)
	}
	return user, sc, nil
}

// loadScoped busca as transações do escopo com os filtros aplicados, já com
// as associações usadas pelas respostas e agregações
func loadScoped(sc scope.Scope, f report.Filters) ([]models.Transaction, error) {
	q := sc.Transactions(database.DB.Model(&models.Transaction{}))
	q = f.Apply(q)

	var txs []models.Transaction
	err := q.
		Preload("Category").
		Preload("User").
		Preload("Church").
		Preload("Church.Field").
		Order("date DESC, created_at DESC").
		Find(&txs).Error
	return txs, err
}

func saveProof(file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// ----------------------------------------
// POST /api/transactions
// ----------------------------------------

func CreateTransactionHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		txType := models.TransactionType(c.FormValue("type"))
		if txType != models.TypeIncome && txType != models.TypeExpense {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de transação inválido")
		}

		value, err := ParseValue(c.FormValue("value"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date, err := time.Parse("2006-01-02", c.FormValue("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data inválida (use AAAA-MM-DD)")
		}

		var categoryID, fieldID, churchID uint
		if _, err := fmt.Sscan(c.FormValue("category_id"), &categoryID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria inválida")
		}
		if _, err := fmt.Sscan(c.FormValue("field_id"), &fieldID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Campo inválido")
		}
		if _, err := fmt.Sscan(c.FormValue("church_id"), &churchID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Igreja inválida")
		}

		if !sc.HasField(fieldID) {
			return fiber.NewError(fiber.StatusForbidden, "Você não tem acesso a este campo")
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria não encontrada")
		}

		var church models.Church
		if err := database.DB.First(&church, "id = ?", churchID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Igreja não encontrada")
		}
		if church.FieldID != fieldID {
			return fiber.NewError(fiber.StatusBadRequest, "A igreja selecionada não pertence ao campo informado")
		}

		file, fileErr := c.FormFile("proof")
		hasProof := fileErr == nil && file != nil
		if err := ValidateProofPresence(&category, hasProof); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		proofPath := ""
		if hasProof {
			if err := ValidateProofFile(file.Filename, file.Size); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			proofPath, err = saveProof(file, cfg.ProofPath)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o comprovante")
			}
		}

		tx := models.Transaction{
			Type:       txType,
			Descr:      c.FormValue("descr"),
			CategoryID: category.ID,
			Value:      value,
			Date:       date,
			UserID:     user.ID,
			ChurchID:   church.ID,
			ProofPath:  proofPath,
		}
		if err := database.DB.Create(&tx).Error; err != nil {
			if proofPath != "" {
				os.Remove(proofPath)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar a transação")
		}

		database.DB.
			Preload("Category").
			Preload("User").
			Preload("Church").
			Preload("Church.Field").
			First(&tx, tx.ID)

		return c.Status(fiber.StatusCreated).JSON(toResponse(tx))
	}
}

// ----------------------------------------
// GET /api/transactions
// ----------------------------------------

func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		f, err := report.ParseFilters(c, sc)
		if err != nil {
			return err
		}

		txs, err := loadScoped(sc, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as transações")
		}

		// Totais sobre o conjunto completo, não sobre a página
		summary := report.Summarize(txs)

		page := 1
		if raw := c.Query("page"); raw != "" {
			if _, err := fmt.Sscan(raw, &page); err != nil || page < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Página inválida")
			}
		}

		totalPages := (len(txs) + PageSize - 1) / PageSize
		if totalPages == 0 {
			totalPages = 1
		}

		start := (page - 1) * PageSize
		end := start + PageSize
		if start > len(txs) {
			start = len(txs)
		}
		if end > len(txs) {
			end = len(txs)
		}

		items := make([]TransactionResponse, 0, end-start)
		for _, t := range txs[start:end] {
			items = append(items, toResponse(t))
		}

		return c.JSON(fiber.Map{
			"transactions":  items,
			"count":         summary.Count,
			"total_income":  report.FormatBRL(summary.TotalIncome),
			"total_expense": report.FormatBRL(summary.TotalExpense),
			"balance":       report.FormatBRL(summary.Balance),
			"page":          page,
			"total_pages":   totalPages,
			"period":        f.PeriodLabel(),
		})
	}
}

// findScoped carrega uma transação verificando que a igreja dela está no
// escopo do solicitante. Fora do escopo responde 404, nunca confirma a
// existência do registro.
func findScoped(c *fiber.Ctx, sc scope.Scope) (*models.Transaction, error) {
	var tx models.Transaction
	err := database.DB.
		Preload("Category").
		Preload("User").
		Preload("Church").
		Preload("Church.Field").
		First(&tx, "id = ?", c.Params("id")).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Transação não encontrada")
	}
	if !sc.HasField(tx.Church.FieldID) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Transação não encontrada")
	}
	return &tx, nil
}

func GetTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		tx, err := findScoped(c, sc)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(*tx))
	}
}

// GET /api/transactions/:id/proof devolve o comprovante anexado
func ProofHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		tx, err := findScoped(c, sc)
		if err != nil {
			return err
		}
		if tx.ProofPath == "" {
			return fiber.NewError(fiber.StatusNotFound, "A transação não possui comprovante")
		}
		return c.SendFile(tx.ProofPath)
	}
}

// ----------------------------------------
// PUT /api/transactions/:id (somente admin)
// ----------------------------------------

func UpdateTransactionHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		tx, err := findScoped(c, sc)
		if err != nil {
			return err
		}

		if raw := c.FormValue("type"); raw != "" {
			txType := models.TransactionType(raw)
			if txType != models.TypeIncome && txType != models.TypeExpense {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo de transação inválido")
			}
			tx.Type = txType
		}
		if raw := c.FormValue("descr"); raw != "" {
			tx.Descr = raw
		}
		if raw := c.FormValue("value"); raw != "" {
			value, err := ParseValue(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			tx.Value = value
		}
		if raw := c.FormValue("date"); raw != "" {
			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data inválida (use AAAA-MM-DD)")
			}
			tx.Date = date
		}
		if raw := c.FormValue("category_id"); raw != "" {
			var categoryID uint
			if _, err := fmt.Sscan(raw, &categoryID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria inválida")
			}
			var category models.Category
			if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria não encontrada")
			}
			tx.CategoryID = category.ID
			tx.Category = category
		}
		if raw := c.FormValue("church_id"); raw != "" {
			var churchID uint
			if _, err := fmt.Sscan(raw, &churchID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Igreja inválida")
			}
			var church models.Church
			if err := database.DB.Preload("Field").First(&church, "id = ?", churchID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Igreja não encontrada")
			}
			tx.ChurchID = church.ID
			tx.Church = church
		}

		oldProof := tx.ProofPath
		file, fileErr := c.FormFile("proof")
		if fileErr == nil && file != nil {
			if err := ValidateProofFile(file.Filename, file.Size); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			newPath, err := saveProof(file, cfg.ProofPath)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o comprovante")
			}
			tx.ProofPath = newPath
		} else if c.FormValue("remove_proof") == "true" {
			tx.ProofPath = ""
		}

		// A troca de categoria não pode deixar a transação sem comprovante
		if err := ValidateProofPresence(&tx.Category, tx.ProofPath != ""); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := database.DB.Save(tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a transação")
		}
		if oldProof != "" && oldProof != tx.ProofPath {
			os.Remove(oldProof)
		}

		return c.JSON(fiber.Map{"message": "Transação atualizada com sucesso!"})
	}
}

// DELETE /api/transactions/:id (somente admin)
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		tx, err := findScoped(c, sc)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.Transaction{}, tx.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a transação")
		}
		if tx.ProofPath != "" {
			os.Remove(tx.ProofPath)
		}

		return c.JSON(fiber.Map{"message": "Transação excluída com sucesso!"})
	}
}

// ----------------------------------------
// Exportações
// ----------------------------------------

func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		f, err := report.ParseFilters(c, sc)
		if err != nil {
			return err
		}

		txs, err := loadScoped(sc, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o relatório")
		}

		pdfBytes, err := report.BuildTransactionsPDF(txs, f, report.Summarize(txs))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o PDF")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="transacoes.pdf"`)
		return c.Send(pdfBytes)
	}
}

func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		f, err := report.ParseFilters(c, sc)
		if err != nil {
			return err
		}

		txs, err := loadScoped(sc, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o relatório")
		}

		xlsxBytes, err := report.BuildTransactionsExcel(txs, f, report.Summarize(txs))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="transacoes.xlsx"`)
		return c.Send(xlsxBytes)
	}
}

// ----------------------------------------
// GET /api/churches/by-field (formulário de transações)
// ----------------------------------------

func ChurchesByFieldHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, sc, err := requireScope(c)
		if err != nil {
			return err
		}

		var fieldID uint
		if _, err := fmt.Sscan(c.Query("field_id"), &fieldID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Campo inválido")
		}
		if !sc.HasField(fieldID) {
			return fiber.NewError(fiber.StatusForbidden, "Você não tem acesso a este campo")
		}

		cacheKey := fmt.Sprintf("field:%d", fieldID)
		if cached, ok := admin.ChurchCache.Get(cacheKey); ok {
			return c.JSON(cached)
		}

		var churches []models.Church
		err = database.DB.
			Preload("Shepherd").
			Preload("Field").
			Where("field_id = ?", fieldID).
			Order("name asc").
			Find(&churches).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as igrejas")
		}

		res := make([]admin.ChurchResponse, 0, len(churches))
		for _, ch := range churches {
			res = append(res, admin.ChurchResponse{
				ID:       ch.ID,
				Name:     ch.Name,
				Address:  ch.Address,
				Shepherd: ch.Shepherd.Name,
				Field:    ch.Field.Name,
				FieldID:  ch.FieldID,
			})
		}
		admin.ChurchCache.Set(cacheKey, res)

		return c.JSON(res)
	}
}
