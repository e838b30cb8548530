package report

import (
	"testing"
	"time"
)

func TestDefaultPeriod(t *testing.T) {
	cases := []struct {
		today    string
		wantFrom string
		wantTo   string
	}{
		// Ano bissexto
		{"2024-02-15", "2024-02-01", "2024-02-29"},
		// Fevereiro comum
		{"2023-02-10", "2023-02-01", "2023-02-28"},
		// Meses de 30 e 31 dias
		{"2024-04-01", "2024-04-01", "2024-04-30"},
		{"2024-01-31", "2024-01-01", "2024-01-31"},
		{"2024-12-25", "2024-12-01", "2024-12-31"},
	}

	for _, tc := range cases {
		today, err := time.Parse("2006-01-02", tc.today)
		if err != nil {
			t.Fatalf("data de teste inválida %q: %v", tc.today, err)
		}

		from, to := DefaultPeriod(today)

		if got := from.Format("2006-01-02"); got != tc.wantFrom {
			t.Errorf("DefaultPeriod(%s) from = %s, esperado %s", tc.today, got, tc.wantFrom)
		}
		if got := to.Format("2006-01-02"); got != tc.wantTo {
			t.Errorf("DefaultPeriod(%s) to = %s, esperado %s", tc.today, got, tc.wantTo)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2024-02-01")
	to, _ := time.Parse("2006-01-02", "2024-02-29")
	f := Filters{DateFrom: from, DateTo: to}

	if got := f.PeriodLabel(); got != "01/02/2024 a 29/02/2024" {
		t.Errorf("PeriodLabel = %q", got)
	}
}
