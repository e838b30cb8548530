package report

import (
	"testing"
	"time"

	"tesouraria-backend/internal/models"

	"github.com/shopspring/decimal"
)

func tx(typ models.TransactionType, value string, date string, category models.Category, church models.Church) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Type:       typ,
		Value:      decimal.RequireFromString(value),
		Date:       d,
		CategoryID: category.ID,
		Category:   category,
		ChurchID:   church.ID,
		Church:     church,
	}
}

var (
	fieldCanoinhas = models.Field{ID: 1, Name: "Canoinhas"}
	fieldMafra     = models.Field{ID: 2, Name: "Mafra"}

	churchCentral = models.Church{ID: 1, Name: "Igreja Central", FieldID: 1, Field: fieldCanoinhas}
	churchBairro  = models.Church{ID: 2, Name: "Igreja do Bairro", FieldID: 1, Field: fieldCanoinhas}
	churchMafra   = models.Church{ID: 3, Name: "Igreja Mafra", FieldID: 2, Field: fieldMafra}

	catDizimo  = models.Category{ID: 1, Name: "Dízimo"}
	catOferta  = models.Category{ID: 2, Name: "Oferta"}
	catDespesa = models.Category{ID: 3, Name: "Manutenção"}
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		tx(models.TypeIncome, "100.10", "2024-01-05", catDizimo, churchCentral),
		tx(models.TypeIncome, "250.90", "2024-01-15", catOferta, churchCentral),
		tx(models.TypeIncome, "80.00", "2024-01-31", catDizimo, churchBairro),
		tx(models.TypeExpense, "45.55", "2024-01-20", catDespesa, churchBairro),
		tx(models.TypeIncome, "500.00", "2024-01-10", catDizimo, churchMafra),
		tx(models.TypeExpense, "120.00", "2024-02-01", catDespesa, churchMafra),
	}
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	txs := sampleTransactions()

	s := Summarize(txs)

	if s.Count != len(txs) {
		t.Errorf("Count = %d, esperado %d", s.Count, len(txs))
	}
	wantIncome := decimal.RequireFromString("931.00")
	wantExpense := decimal.RequireFromString("165.55")
	if !s.TotalIncome.Equal(wantIncome) {
		t.Errorf("TotalIncome = %s, esperado %s", s.TotalIncome, wantIncome)
	}
	if !s.TotalExpense.Equal(wantExpense) {
		t.Errorf("TotalExpense = %s, esperado %s", s.TotalExpense, wantExpense)
	}
	if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)) {
		t.Errorf("Balance = %s, esperado income - expense = %s", s.Balance, s.TotalIncome.Sub(s.TotalExpense))
	}
}

// A soma dos subtotais de qualquer agrupamento precisa bater com o total
// do conjunto sem segmentação
func TestBreakdownSumsMatchTotals(t *testing.T) {
	txs := sampleTransactions()
	s := Summarize(txs)
	grandTotal := s.TotalIncome.Add(s.TotalExpense)

	groupings := map[string][]BreakdownRow{
		"categoria": ByCategory(txs),
		"igreja":    ByChurch(txs),
		"campo":     ByField(txs),
	}

	for name, rows := range groupings {
		sum := decimal.Zero
		for _, row := range rows {
			if row.Income.IsZero() && row.Expense.IsZero() {
				t.Errorf("agrupamento por %s contém linha zerada: %s", name, row.Name)
			}
			sum = sum.Add(row.Income).Add(row.Expense)
		}
		if !sum.Equal(grandTotal) {
			t.Errorf("agrupamento por %s soma %s, esperado %s", name, sum, grandTotal)
		}
	}
}

func TestByFieldGroupsChurchesUnderField(t *testing.T) {
	rows := ByField(sampleTransactions())

	if len(rows) != 2 {
		t.Fatalf("ByField retornou %d linhas, esperado 2", len(rows))
	}
	// Ordenado por nome
	if rows[0].Name != "Canoinhas" || rows[1].Name != "Mafra" {
		t.Fatalf("ordem inesperada: %s, %s", rows[0].Name, rows[1].Name)
	}

	canoinhas := rows[0]
	if !canoinhas.Income.Equal(decimal.RequireFromString("431.00")) {
		t.Errorf("Canoinhas income = %s, esperado 431.00", canoinhas.Income)
	}
	if !canoinhas.Expense.Equal(decimal.RequireFromString("45.55")) {
		t.Errorf("Canoinhas expense = %s, esperado 45.55", canoinhas.Expense)
	}
}

// Cenário: admin filtra campo=Canoinhas, tipo=income, janeiro de 2024
func TestFilteredIncomeByFieldScenario(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2024-01-01")
	to, _ := time.Parse("2006-01-02", "2024-01-31")
	f := Filters{
		DateFrom: from,
		DateTo:   to,
		Type:     models.TypeIncome,
		FieldID:  fieldCanoinhas.ID,
	}

	var filtered []models.Transaction
	for _, tr := range sampleTransactions() {
		if f.Matches(&tr) {
			filtered = append(filtered, tr)
		}
	}

	for _, tr := range filtered {
		if tr.Type != models.TypeIncome {
			t.Errorf("transação de tipo %s não deveria passar no filtro", tr.Type)
		}
		if tr.Church.FieldID != fieldCanoinhas.ID {
			t.Errorf("transação do campo %d não deveria passar no filtro", tr.Church.FieldID)
		}
	}

	s := Summarize(filtered)
	if s.Count != 3 {
		t.Fatalf("Count = %d, esperado 3", s.Count)
	}
	if !s.TotalIncome.Equal(decimal.RequireFromString("431.00")) {
		t.Errorf("TotalIncome = %s, esperado 431.00", s.TotalIncome)
	}
	if !s.TotalExpense.IsZero() {
		t.Errorf("TotalExpense = %s, esperado 0", s.TotalExpense)
	}
}

// Limites de data são inclusivos nos dois extremos
func TestMatchesInclusiveDateBounds(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2024-01-05")
	to, _ := time.Parse("2006-01-02", "2024-01-31")
	f := Filters{DateFrom: from, DateTo: to}

	onFrom := tx(models.TypeIncome, "10.00", "2024-01-05", catDizimo, churchCentral)
	onTo := tx(models.TypeIncome, "10.00", "2024-01-31", catDizimo, churchCentral)
	before := tx(models.TypeIncome, "10.00", "2024-01-04", catDizimo, churchCentral)

	if !f.Matches(&onFrom) || !f.Matches(&onTo) {
		t.Error("transações nos limites do período deveriam passar no filtro")
	}
	if f.Matches(&before) {
		t.Error("transação anterior ao período não deveria passar no filtro")
	}
}

func TestMatchesSearchOnDescriptionAndCategory(t *testing.T) {
	f := Filters{Search: "dízimo"}

	byCategory := tx(models.TypeIncome, "10.00", "2024-01-05", catDizimo, churchCentral)
	byDescr := tx(models.TypeExpense, "10.00", "2024-01-05", catDespesa, churchCentral)
	byDescr.Descr = "Repasse de Dízimo do culto"
	neither := tx(models.TypeExpense, "10.00", "2024-01-05", catDespesa, churchCentral)

	if !f.Matches(&byCategory) {
		t.Error("busca deveria casar com o nome da categoria")
	}
	if !f.Matches(&byDescr) {
		t.Error("busca deveria casar com a descrição, sem diferenciar maiúsculas")
	}
	if f.Matches(&neither) {
		t.Error("busca não deveria casar")
	}
}
