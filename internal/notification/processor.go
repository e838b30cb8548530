package notification

import (
	"log"
	"time"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
)

var repeatableFrequencies = []models.RepeatFrequency{
	models.RepeatDaily,
	models.RepeatWeekly,
	models.RepeatMonthly,
	models.RepeatAnnually,
}

// ProcessDueRepeats processa as notificações repetitivas vencidas: cria a
// cópia encadeada à original e avança a próxima data de disparo. Só insere
// linhas novas e atualiza o campo next_repeat_date da original, por isso é
// seguro rodar em paralelo com o atendimento de requisições. Falha em um
// item é registrada e o lote continua.
func ProcessDueRepeats(now time.Time, dryRun bool) (int, error) {
	var due []models.Notification
	err := database.DB.
		Where("repeat = ?", true).
		Where("repeat_frequency IN ?", repeatableFrequencies).
		Where("original_notification_id IS NULL"). // apenas as originais
		Where("next_repeat_date <= ?", now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	created := 0

	for i := range due {
		n := &due[i]

		newDate, err := NextDate(*n.NextRepeatDate, n.RepeatFrequency)
		if err != nil {
			log.Printf("Erro ao calcular próxima data da notificação %d: %v", n.ID, err)
			continue
		}

		if dryRun {
			log.Printf("[DRY-RUN] Criaria notificação: %s para %s", n.Title, newDate.Format("02/01/2006 15:04"))
			created++
			continue
		}

		successor := models.Notification{
			Title:                  n.Title,
			Body:                   n.Body,
			Date:                   newDate,
			IsRead:                 false,
			Repeat:                 n.Repeat,
			RepeatFrequency:        n.RepeatFrequency,
			OriginalNotificationID: &n.ID,
			CreatedByID:            n.CreatedByID,
		}
		if err := database.DB.Create(&successor).Error; err != nil {
			log.Printf("Erro ao criar notificação repetida da original %d: %v", n.ID, err)
			continue
		}

		next, err := NextDate(newDate, n.RepeatFrequency)
		if err != nil {
			log.Printf("Erro ao avançar próxima data da notificação %d: %v", n.ID, err)
			continue
		}
		if err := database.DB.Model(n).Update("next_repeat_date", next).Error; err != nil {
			log.Printf("Erro ao atualizar próxima data da notificação %d: %v", n.ID, err)
			continue
		}

		created++
		log.Printf("Criada notificação repetida: %s para %s", successor.Title, newDate.Format("02/01/2006 15:04"))
	}

	if err := backfillNextRepeatDates(dryRun); err != nil {
		log.Printf("Erro ao preencher próximas datas ausentes: %v", err)
	}

	return created, nil
}

// backfillNextRepeatDates cobre originais repetitivas que ainda não têm
// next_repeat_date definida (criadas antes do processador existir)
func backfillNextRepeatDates(dryRun bool) error {
	var missing []models.Notification
	err := database.DB.
		Where("repeat = ?", true).
		Where("repeat_frequency IN ?", repeatableFrequencies).
		Where("original_notification_id IS NULL").
		Where("next_repeat_date IS NULL").
		Find(&missing).Error
	if err != nil {
		return err
	}

	for i := range missing {
		n := &missing[i]

		next, err := NextDate(n.Date, n.RepeatFrequency)
		if err != nil {
			log.Printf("Erro ao calcular próxima data da notificação %d: %v", n.ID, err)
			continue
		}

		if dryRun {
			log.Printf("[DRY-RUN] Definiria próxima data de %s -> %s", n.Title, next.Format("02/01/2006 15:04"))
			continue
		}

		if err := database.DB.Model(n).Update("next_repeat_date", next).Error; err != nil {
			log.Printf("Erro ao definir próxima data da notificação %d: %v", n.ID, err)
			continue
		}
		log.Printf("Definida próxima data de %s -> %s", n.Title, next.Format("02/01/2006 15:04"))
	}

	return nil
}
