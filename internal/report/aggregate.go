package report

import (
	"sort"

	"tesouraria-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Summary: totais do conjunto filtrado. Toda a soma é feita em decimal
// de ponto fixo, nunca em float.
type Summary struct {
	Count        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

func Summarize(txs []models.Transaction) Summary {
	s := Summary{
		Count:        len(txs),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range txs {
		if t.Type == models.TypeIncome {
			s.TotalIncome = s.TotalIncome.Add(t.Value)
		} else {
			s.TotalExpense = s.TotalExpense.Add(t.Value)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// BreakdownRow: subtotal de um grupo (categoria, igreja ou campo).
// Grupos sem movimento não entram no resultado.
type BreakdownRow struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ByCategory agrupa o conjunto filtrado por categoria e soma por grupo.
// Category precisa estar pré-carregada.
func ByCategory(txs []models.Transaction) []BreakdownRow {
	return breakdown(txs, func(t *models.Transaction) (uint, string) {
		return t.CategoryID, t.Category.Name
	})
}

// ByChurch agrupa por igreja. Church precisa estar pré-carregada.
func ByChurch(txs []models.Transaction) []BreakdownRow {
	return breakdown(txs, func(t *models.Transaction) (uint, string) {
		return t.ChurchID, t.Church.Name
	})
}

// ByField agrupa pelo campo da igreja. Church.Field precisa estar
// pré-carregada.
func ByField(txs []models.Transaction) []BreakdownRow {
	return breakdown(txs, func(t *models.Transaction) (uint, string) {
		return t.Church.FieldID, t.Church.Field.Name
	})
}

func breakdown(txs []models.Transaction, key func(*models.Transaction) (uint, string)) []BreakdownRow {
	groups := make(map[uint]*BreakdownRow)
	for i := range txs {
		t := &txs[i]
		id, name := key(t)
		row, ok := groups[id]
		if !ok {
			row = &BreakdownRow{ID: id, Name: name, Income: decimal.Zero, Expense: decimal.Zero}
			groups[id] = row
		}
		if t.Type == models.TypeIncome {
			row.Income = row.Income.Add(t.Value)
		} else {
			row.Expense = row.Expense.Add(t.Value)
		}
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, row := range groups {
		// Transações têm valor > 0, mas o contrato é explícito: grupos
		// zerados não viram linha
		if row.Income.IsZero() && row.Expense.IsZero() {
			continue
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
