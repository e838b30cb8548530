package notification

import (
	"fmt"
	"time"

	"tesouraria-backend/internal/models"
)

// NextDate calcula a próxima ocorrência somando uma unidade da
// frequência. Aritmética de mês e ano preserva o horário e trava o dia
// no último dia válido do mês de destino (31/01 + 1 mês = 29/02 em ano
// bissexto).
func NextDate(t time.Time, freq models.RepeatFrequency) (time.Time, error) {
	switch freq {
	case models.RepeatDaily:
		return t.AddDate(0, 0, 1), nil
	case models.RepeatWeekly:
		return t.AddDate(0, 0, 7), nil
	case models.RepeatMonthly:
		return addMonthsClamped(t, 1), nil
	case models.RepeatAnnually:
		return addYearsClamped(t, 1), nil
	default:
		return time.Time{}, fmt.Errorf("frequência de repetição desconhecida: %s", freq)
	}
}

// AddDate normaliza datas inválidas (31/01 + 1 mês viraria 02/03 ou 03/03),
// então o dia é travado manualmente no fim do mês de destino.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := time.Month(int(month) + months)

	last := lastDayOfMonth(year, m, t.Location())
	if day > last {
		day = last
	}
	return time.Date(year, m, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years

	last := lastDayOfMonth(year, month, t.Location())
	if day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	// Dia zero do mês seguinte é o último dia do mês
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
