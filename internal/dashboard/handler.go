package dashboard

import (
	"tesouraria-backend/internal/auth"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
	"tesouraria-backend/internal/report"
	"tesouraria-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
)

type BreakdownItem struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

func toItems(rows []report.BreakdownRow) []BreakdownItem {
	items := make([]BreakdownItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, BreakdownItem{
			ID:      r.ID,
			Name:    r.Name,
			Income:  report.FormatBRL(r.Income),
			Expense: report.FormatBRL(r.Expense),
		})
	}
	return items
}

func loadScoped(sc scope.Scope, f report.Filters) ([]models.Transaction, error) {
	q := sc.Transactions(database.DB.Model(&models.Transaction{}))
	q = f.Apply(q)

	var txs []models.Transaction
	err := q.
		Preload("Category").
		Preload("Church").
		Preload("Church.Field").
		Find(&txs).Error
	return txs, err
}

// GET /api/dashboard/summary: totais e quebras por categoria, campo e
// igreja, tudo dentro do escopo do solicitante
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		sc := scope.ForUser(user)
		if sc.Empty() {
			return fiber.NewError(fiber.StatusBadRequest, scope.NoFieldsMessage)
		}

		f, err := report.ParseFilters(c, sc)
		if err != nil {
			return err
		}

		txs, err := loadScoped(sc, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar o painel")
		}

		s := report.Summarize(txs)
		return c.JSON(fiber.Map{
			"period":        f.PeriodLabel(),
			"count":         s.Count,
			"total_income":  report.FormatBRL(s.TotalIncome),
			"total_expense": report.FormatBRL(s.TotalExpense),
			"balance":       report.FormatBRL(s.Balance),
			"by_category":   toItems(report.ByCategory(txs)),
			"by_field":      toItems(report.ByField(txs)),
			"by_church":     toItems(report.ByChurch(txs)),
		})
	}
}

// GET /api/dashboard/export-pdf: mesma seleção do summary em PDF
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}
		sc := scope.ForUser(user)
		if sc.Empty() {
			return fiber.NewError(fiber.StatusBadRequest, scope.NoFieldsMessage)
		}

		f, err := report.ParseFilters(c, sc)
		if err != nil {
			return err
		}

		txs, err := loadScoped(sc, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o relatório")
		}

		pdfBytes, err := report.BuildDashboardPDF(f, report.Summarize(txs), report.ByCategory(txs), report.ByField(txs))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o PDF")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="painel.pdf"`)
		return c.Send(pdfBytes)
	}
}
