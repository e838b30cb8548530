package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formata um valor monetário na convenção brasileira:
// vírgula como separador decimal e ponto como separador de milhar.
// Ex.: 1234567.89 -> "1.234.567,89"
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)

	return b.String()
}

// FormatBRLCurrency prefixa o símbolo da moeda: "R$ 1.234,56"
func FormatBRLCurrency(d decimal.Decimal) string {
	return "R$ " + FormatBRL(d)
}
