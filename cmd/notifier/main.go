package main

import (
	"flag"
	"log"
	"time"

	"tesouraria-backend/internal/config"
	"tesouraria-backend/internal/database"
	"tesouraria-backend/internal/notification"
)

// Processador de notificações recorrentes. Roda uma vez e encerra, pensado
// para ser agendado via cron:
//
//	0 6 * * *  /usr/local/bin/notifier
func main() {
	dryRun := flag.Bool("dry-run", false, "apenas mostra o que seria criado, sem gravar")
	flag.Parse()

	cfg := config.Load()
	database.Init(cfg)

	created, err := notification.ProcessDueRepeats(time.Now(), *dryRun)
	if err != nil {
		log.Fatal("Falha ao processar notificações recorrentes: ", err)
	}

	if *dryRun {
		log.Printf("[dry-run] %d notificações seriam criadas", created)
		return
	}
	log.Printf("%d notificações recorrentes criadas", created)
}
