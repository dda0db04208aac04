package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"carebook/internal/config"
	"carebook/internal/db"
	"carebook/internal/notify"
	"carebook/internal/repository"
)

// The worker consumes the notification queue, sends one email per
// event and records delivery attempts. It runs until interrupted.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	logRepo := repository.NewNotificationLogRepository(gormDB)

	sender := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.MailFromName)
	consumer := notify.NewConsumer(cfg.AMQPURL, sender, logRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("notification worker consuming %s", notify.QueueName)
	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("worker stopped: %v", err)
	}
}
