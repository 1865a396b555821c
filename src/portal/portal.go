package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/config"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/data"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/notify"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/webserver"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	rdb := data.MustRedis(cfg.RedisURL)

	// Email is optional but must be configured completely or not at all.
	var mailer notify.EmailSender
	switch {
	case cfg.SESRegion != "" && cfg.EmailSender != "":
		m, err := notify.NewMailer(context.Background(), cfg.SESRegion, cfg.EmailSender)
		if err != nil {
			log.Fatalf("ses: %v", err)
		}
		mailer = m
	case cfg.SESRegion != "" || cfg.EmailSender != "":
		log.Fatalf("email: SES_REGION and EMAIL_SENDER must both be set")
	}

	var ops, announce notify.WebhookSender
	if cfg.OpsWebhookURL != "" {
		w, err := notify.NewWebhook(cfg.OpsWebhookURL)
		if err != nil {
			log.Fatalf("ops webhook: %v", err)
		}
		ops = w
	}
	if cfg.AnnounceWebhookURL != "" {
		w, err := notify.NewWebhook(cfg.AnnounceWebhookURL)
		if err != nil {
			log.Fatalf("announce webhook: %v", err)
		}
		announce = w
	}
	notifier := notify.New(ops, announce, mailer, cfg.AdminEmail)

	router := webserver.New(cfg, db, rdb, notifier)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("IERP application portal listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
