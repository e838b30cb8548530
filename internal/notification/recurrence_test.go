package notification

import (
	"testing"
	"time"

	"tesouraria-backend/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		freq models.RepeatFrequency
		want string
	}{
		{"diária", "2024-03-10 08:00", models.RepeatDaily, "2024-03-11 08:00"},
		{"semanal", "2024-03-10 08:00", models.RepeatWeekly, "2024-03-17 08:00"},
		{"mensal simples", "2024-03-10 08:00", models.RepeatMonthly, "2024-04-10 08:00"},
		// 31 de janeiro + 1 mês trava no último dia de fevereiro (bissexto)
		{"mensal com trava bissexto", "2024-01-31 08:00", models.RepeatMonthly, "2024-02-29 08:00"},
		{"mensal com trava comum", "2023-01-31 08:00", models.RepeatMonthly, "2023-02-28 08:00"},
		// 31 de maio + 1 mês trava em 30 de junho
		{"mensal 31 para mês de 30", "2024-05-31 08:00", models.RepeatMonthly, "2024-06-30 08:00"},
		// Virada de ano
		{"mensal dezembro", "2024-12-15 08:00", models.RepeatMonthly, "2025-01-15 08:00"},
		{"anual simples", "2024-03-10 08:00", models.RepeatAnnually, "2025-03-10 08:00"},
		// 29 de fevereiro + 1 ano trava em 28 de fevereiro
		{"anual bissexto", "2024-02-29 08:00", models.RepeatAnnually, "2025-02-28 08:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextDate(date(tc.in), tc.freq)
			if err != nil {
				t.Fatalf("NextDate retornou erro: %v", err)
			}
			want := date(tc.want)
			if !got.Equal(want) {
				t.Errorf("NextDate(%s, %s) = %s, esperado %s",
					tc.in, tc.freq, got.Format("2006-01-02 15:04"), tc.want)
			}
		})
	}
}

func TestNextDateUnknownFrequency(t *testing.T) {
	if _, err := NextDate(date("2024-03-10 08:00"), models.RepeatNone); err == nil {
		t.Fatal("frequência 'none' deveria retornar erro")
	}
}

func TestNextDatePreservesTime(t *testing.T) {
	got, err := NextDate(date("2024-01-31 18:45"), models.RepeatMonthly)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 18 || got.Minute() != 45 {
		t.Errorf("horário não preservado: %s", got.Format("15:04"))
	}
}
