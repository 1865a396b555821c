package notify

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
)

// WebhookSender posts a payload to a Discord channel webhook.
type WebhookSender interface {
	Execute(params *discordgo.WebhookParams) error
}

var webhookURLRe = regexp.MustCompile(`^https://(?:\w+\.)?discord\.com/api/webhooks/(\d+)/([\w-]+)$`)

// Webhook executes against a channel webhook URL. The session carries no bot
// token; the webhook token embedded in the URL is the only authorization.
type Webhook struct {
	id      string
	token   string
	session *discordgo.Session
}

func NewWebhook(url string) (*Webhook, error) {
	m := webhookURLRe.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("notify: malformed webhook url")
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	s.Client = &http.Client{Timeout: 10 * time.Second}
	return &Webhook{id: m[1], token: m[2], session: s}, nil
}

func (w *Webhook) Execute(params *discordgo.WebhookParams) error {
	_, err := w.session.WebhookExecute(w.id, w.token, true, params)
	return err
}
