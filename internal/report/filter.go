package report

import (
	"fmt"
	"strings"
	"time"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
	"tesouraria-backend/internal/scope"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Filters: critérios opcionais aplicados sobre o conjunto de transações
// já restrito ao escopo do usuário
type Filters struct {
	DateFrom   time.Time
	DateTo     time.Time
	CategoryID uint
	Type       models.TransactionType
	FieldID    uint
	ChurchID   uint
	Search     string
}

// DefaultPeriod: primeiro e último dia do mês corrente. O último dia é
// calculado pelo calendário (28-31), nunca por uma janela fixa de 30 dias.
func DefaultPeriod(today time.Time) (time.Time, time.Time) {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ParseFilters lê os critérios da query string. Datas ausentes caem no
// período padrão; filtro de campo só vale quando o campo está no escopo
// do solicitante.
func ParseFilters(c *fiber.Ctx, sc scope.Scope) (Filters, error) {
	var f Filters

	defFrom, defTo := DefaultPeriod(time.Now())
	f.DateFrom, f.DateTo = defFrom, defTo

	if s := c.Query("date_from"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Data inicial inválida (use AAAA-MM-DD)")
		}
		f.DateFrom = d
	}
	if s := c.Query("date_to"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Data final inválida (use AAAA-MM-DD)")
		}
		f.DateTo = d
	}

	if s := c.Query("category"); s != "" {
		if _, err := fmt.Sscan(s, &f.CategoryID); err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Categoria inválida")
		}
	}

	if s := c.Query("type"); s != "" {
		t := models.TransactionType(s)
		if t != models.TypeIncome && t != models.TypeExpense {
			return f, fiber.NewError(fiber.StatusBadRequest, "Tipo de transação inválido")
		}
		f.Type = t
	}

	if s := c.Query("field"); s != "" {
		var fieldID uint
		if _, err := fmt.Sscan(s, &fieldID); err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Campo inválido")
		}
		// Campo fora do escopo é ignorado em silêncio, nunca vaza dados
		if sc.HasField(fieldID) {
			f.FieldID = fieldID
		}
	}

	if s := c.Query("church"); s != "" {
		if _, err := fmt.Sscan(s, &f.ChurchID); err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Igreja inválida")
		}
	}

	f.Search = c.Query("search")

	return f, nil
}

// Apply compõe os predicados sobre uma consulta de transações.
// Limites de data são inclusivos.
func (f Filters) Apply(q *gorm.DB) *gorm.DB {
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date <= ?", f.DateTo.Format("2006-01-02"))
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.FieldID != 0 {
		sub := database.DB.Model(&models.Church{}).Select("id").Where("field_id = ?", f.FieldID)
		q = q.Where("church_id IN (?)", sub)
	}
	if f.ChurchID != 0 {
		q = q.Where("church_id = ?", f.ChurchID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		sub := database.DB.Model(&models.Category{}).Select("id").Where("name ILIKE ?", pattern)
		q = q.Where("descr ILIKE ? OR category_id IN (?)", pattern, sub)
	}
	return q
}

// Matches: contrapartida em memória de Apply, com a mesma semântica de
// limites inclusivos. Category e Church.Field precisam estar
// pré-carregadas quando os critérios de busca ou de campo são usados.
func (f Filters) Matches(t *models.Transaction) bool {
	day := t.Date.Format("2006-01-02")
	if !f.DateFrom.IsZero() && day < f.DateFrom.Format("2006-01-02") {
		return false
	}
	if !f.DateTo.IsZero() && day > f.DateTo.Format("2006-01-02") {
		return false
	}
	if f.CategoryID != 0 && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.FieldID != 0 && t.Church.FieldID != f.FieldID {
		return false
	}
	if f.ChurchID != 0 && t.ChurchID != f.ChurchID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Descr), needle) &&
			!strings.Contains(strings.ToLower(t.Category.Name), needle) {
			return false
		}
	}
	return true
}

// PeriodLabel: "01/02/2024 a 29/02/2024", usado no cabeçalho dos relatórios
func (f Filters) PeriodLabel() string {
	return f.DateFrom.Format("02/01/2006") + " a " + f.DateTo.Format("02/01/2006")
}
