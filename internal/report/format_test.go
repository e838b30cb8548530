package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"0.5", "0,50"},
		{"10", "10,00"},
		{"100", "100,00"},
		{"999.99", "999,99"},
		{"1000", "1.000,00"},
		{"1234.56", "1.234,56"},
		{"1234567.89", "1.234.567,89"},
		{"-1234.56", "-1.234,56"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("valor de teste inválido %q: %v", tc.in, err)
		}
		if got := FormatBRL(d); got != tc.want {
			t.Errorf("FormatBRL(%s) = %q, esperado %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBRLCurrency(t *testing.T) {
	d := decimal.RequireFromString("1500.75")
	if got := FormatBRLCurrency(d); got != "R$ 1.500,75" {
		t.Errorf("FormatBRLCurrency = %q, esperado %q", got, "R$ 1.500,75")
	}
}
