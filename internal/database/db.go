package database

import (
	"log"

	"tesouraria-backend/internal/config"
	"tesouraria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
	}

	// Migration manual: mandatory_proof entrou depois das primeiras versões
	// do schema, bases antigas precisam da coluna preenchida (ANTES do
	// AutoMigrate, para preservar os registros existentes)
	if DB.Migrator().HasTable(&models.Category{}) {
		if !DB.Migrator().HasColumn(&models.Category{}, "mandatory_proof") {
			log.Println("Adicionando coluna categories.mandatory_proof...")
			if err := DB.Exec("ALTER TABLE categories ADD COLUMN mandatory_proof BOOLEAN NOT NULL DEFAULT TRUE").Error; err != nil {
				log.Printf("Erro ao adicionar mandatory_proof (coluna pode já existir): %v", err)
			} else {
				log.Println("Coluna mandatory_proof adicionada com default TRUE")
			}
		}
	}

	err = DB.AutoMigrate(
		&models.Field{},
		&models.Shepherd{},
		&models.Church{},
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.AccessLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	// Mesma situação para o vínculo many-to-many: versões antigas tinham um
	// único field_id no usuário (DEPOIS do AutoMigrate, user_fields precisa
	// existir para receber os vínculos)
	if DB.Migrator().HasColumn(&models.User{}, "field_id") {
		log.Println("Migrando users.field_id para a tabela user_fields...")
		if err := DB.Exec(`
			INSERT INTO user_fields (user_id, field_id)
			SELECT id, field_id FROM users WHERE field_id IS NOT NULL
			ON CONFLICT DO NOTHING
		`).Error; err != nil {
			log.Printf("Erro ao migrar field_id: %v", err)
		} else {
			if err := DB.Exec("ALTER TABLE users DROP COLUMN field_id").Error; err != nil {
				log.Printf("Erro ao remover users.field_id: %v", err)
			} else {
				log.Println("Coluna users.field_id migrada e removida")
			}
		}
	}

	log.Println("Conexão com o banco de dados estabelecida. Migration concluída.")
}
