package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	ProofPath   string // Pasta onde os comprovantes anexados são gravados
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=tesouraria port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ProofPath:   getEnv("PROOF_PATH", "./comprovantes"), // Default: desenvolvimento local
	}

	// Checagens de segurança para produção
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Variável de ambiente JWT_SECRET não definida! Obrigatória em produção.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET precisa ter pelo menos 32 caracteres! Risco de segurança.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=tesouraria port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usando valor padrão, defina a conexão do seu Postgres em produção.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usando valor padrão, defina o seu domínio em produção.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
