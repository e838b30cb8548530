package report

import (
	"bytes"
	"fmt"

	"tesouraria-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// BuildTransactionsExcel gera a planilha com as mesmas colunas, filtros e
// ordem do relatório em PDF.
func BuildTransactionsExcel(txs []models.Transaction, f Filters, s Summary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	rows := [][]interface{}{
		{"Relatório de Transações"},
		{"Período: " + f.PeriodLabel()},
		{"Total de Transações", s.Count},
		{"Total de Entradas (R$)", FormatBRL(s.TotalIncome)},
		{"Total de Saídas (R$)", FormatBRL(s.TotalExpense)},
		{"Saldo (R$)", FormatBRL(s.Balance)},
		{},
		{"Data", "Tipo", "Categoria", "Descrição", "Igreja", "Valor (R$)"},
	}

	for i := range txs {
		t := &txs[i]
		descr := t.Descr
		if descr == "" {
			descr = "-"
		}
		rows = append(rows, []interface{}{
			t.Date.Format("02/01/2006"),
			t.Type.Label(),
			t.Category.Name,
			descr,
			t.Church.Name,
			FormatBRL(t.Value),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("não foi possível montar a planilha: %w", err)
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("não foi possível montar a planilha: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("não foi possível gerar a planilha: %w", err)
	}
	return buf.Bytes(), nil
}
