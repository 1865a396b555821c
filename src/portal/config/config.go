package config

import (
	"log"
	"os"
)

type Config struct {
	MySQLDSN            string
	RedisURL            string
	JWTSecret           string
	Port                string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string
	OpsWebhookURL       string
	AnnounceWebhookURL  string
	FrontendURL         string
	AdminEmail          string
	SESRegion           string
	EmailSender         string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	return Config{
		MySQLDSN:            getenv("MYSQL_DSN", "ierp:dev@tcp(localhost:3306)/ierp?timeout=5s&readTimeout=5s&writeTimeout=5s"),
		RedisURL:            getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:           getenv("JWT_SECRET", ""),
		Port:                getenv("PORT", "8080"),
		DiscordClientID:     getenv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getenv("DISCORD_CLIENT_SECRET", ""),
		DiscordRedirectURL:  getenv("DISCORD_REDIRECT_URL", "http://localhost:8080/v1/auth/callback"),
		// Notification endpoints are optional; the portal runs without them.
		OpsWebhookURL:      os.Getenv("OPS_WEBHOOK_URL"),
		AnnounceWebhookURL: os.Getenv("ANNOUNCE_WEBHOOK_URL"),
		FrontendURL:        os.Getenv("FRONTEND_URL"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		SESRegion:          os.Getenv("SES_REGION"),
		EmailSender:        os.Getenv("EMAIL_SENDER"),
	}
}
