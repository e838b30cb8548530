package report

import (
	"bytes"
	"fmt"

	"tesouraria-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// Cor institucional do cabeçalho dos relatórios
var headerColor = [3]int{103, 58, 183}

// BuildTransactionsPDF monta o relatório de transações: título, linha do
// período, resumo de totais e uma linha por transação na mesma ordem da
// listagem. Church e Category precisam estar pré-carregadas.
func BuildTransactionsPDF(txs []models.Transaction, f Filters, s Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	writeTitle(pdf, tr, "Relatório de Transações")
	writeSummary(pdf, tr, f, s)

	// Tabela de transações
	headers := []string{"Data", "Tipo", "Categoria", "Descrição", "Igreja", "Valor (R$)"}
	widths := []float64{24, 20, 32, 52, 36, 26}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i := range txs {
		t := &txs[i]

		fill := i%2 == 1
		pdf.SetFillColor(211, 211, 211)

		church := t.Church.Name
		if len([]rune(church)) > 20 {
			church = string([]rune(church)[:17]) + "..."
		}
		descr := t.Descr
		if descr == "" {
			descr = "-"
		}

		row := []string{
			t.Date.Format("02/01/2006"),
			t.Type.Label(),
			t.Category.Name,
			descr,
			church,
			FormatBRL(t.Value),
		}
		for j, cell := range row {
			align := "L"
			if j == len(row)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 7, tr(cell), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("não foi possível gerar o PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildDashboardPDF monta o resumo do painel: totais e as tabelas de
// subtotal por categoria e por campo.
func BuildDashboardPDF(f Filters, s Summary, byCategory, byField []BreakdownRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	writeTitle(pdf, tr, "Relatório do Painel")
	writeSummary(pdf, tr, f, s)

	writeBreakdownTable(pdf, tr, "Por Categoria", byCategory)
	pdf.Ln(6)
	writeBreakdownTable(pdf, tr, "Por Campo", byField)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("não foi possível gerar o PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, f Filters, s Summary) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(73, 80, 87)

	lines := []string{
		"Período: " + f.PeriodLabel(),
		fmt.Sprintf("Total de Transações: %d", s.Count),
		"Total de Entradas: " + FormatBRLCurrency(s.TotalIncome),
		"Total de Saídas: " + FormatBRLCurrency(s.TotalExpense),
		"Saldo: " + FormatBRLCurrency(s.Balance),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
	pdf.SetTextColor(0, 0, 0)
}

func writeBreakdownTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []BreakdownRow) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	widths := []float64{80, 36, 36, 36}
	headers := []string{"Nome", "Entradas (R$)", "Saídas (R$)", "Saldo (R$)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		fill := i%2 == 1
		pdf.SetFillColor(211, 211, 211)
		pdf.CellFormat(widths[0], 7, tr(row.Name), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, tr(FormatBRL(row.Income)), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 7, tr(FormatBRL(row.Expense)), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 7, tr(FormatBRL(row.Income.Sub(row.Expense))), "1", 1, "R", fill, 0, "")
	}
}
