package notify

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/departments"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/bwmarrin/discordgo"
)

// Discord caps embed field values at 1024 characters.
const fieldLimit = 1024

const (
	colorSubmitted = 0x3498db
	colorApproved  = 0x00ff00
	colorRejected  = 0xe74c3c
)

var numericIDRe = regexp.MustCompile(`^\d+$`)

// Service dispatches all notification side-effects. Every send is best-effort:
// failures are logged and swallowed, never returned to the caller, so a
// notification outage cannot roll back a lifecycle transition. Unconfigured
// transports are skipped.
type Service struct {
	ops        WebhookSender // staff channel, full submission detail
	announce   WebhookSender // public channel, decision messages
	mailer     EmailSender
	adminEmail string
}

func New(ops, announce WebhookSender, mailer EmailSender, adminEmail string) *Service {
	return &Service{ops: ops, announce: announce, mailer: mailer, adminEmail: adminEmail}
}

// Submitted posts the full application to the ops channel and sends the
// applicant/admin emails.
func (n *Service) Submitted(app *types.Application) {
	if n.ops != nil {
		params := &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{submissionEmbed(app)},
		}
		if err := n.ops.Execute(params); err != nil {
			log.Printf("notify: submission webhook for %s: %v", app.ID, err)
		}
	}
	if n.mailer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dept := departments.DisplayName(app.Department)
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your application to the <strong>%s</strong> has been received and is pending review. You will be notified on Discord once a decision is made.</p>",
			app.DisplayName, dept)
		if err := n.mailer.Send(ctx, app.Email, "Application received — "+dept, body); err != nil {
			log.Printf("notify: applicant email for %s: %v", app.ID, err)
		}

		if n.adminEmail != "" {
			body := fmt.Sprintf(
				"<p>New %s application from <strong>%s</strong> (Discord %s). Review it in the staff portal.</p>",
				dept, app.DisplayName, app.DiscordID)
			if err := n.mailer.Send(ctx, n.adminEmail, "New application — "+dept, body); err != nil {
				log.Printf("notify: admin email for %s: %v", app.ID, err)
			}
		}
	}
}

func (n *Service) Approved(app *types.Application) {
	msg := fmt.Sprintf("🎉 Congratulations %s! Your application to the **%s** has been approved. Welcome aboard!",
		Mention(app.DiscordID), departments.DisplayName(app.Department))
	n.decision(app, msg)
}

func (n *Service) Rejected(app *types.Application) {
	msg := fmt.Sprintf("%s Your application to the **%s** was not accepted this time. You are welcome to apply again in the future.",
		Mention(app.DiscordID), departments.DisplayName(app.Department))
	n.decision(app, msg)
}

func (n *Service) decision(app *types.Application, content string) {
	if n.announce == nil {
		return
	}
	if err := n.announce.Execute(&discordgo.WebhookParams{Content: content}); err != nil {
		log.Printf("notify: decision webhook for %s: %v", app.ID, err)
	}
}

// Mention renders a working Discord mention for numeric user ids. Legacy
// records that stored a username instead of an id degrade to a bolded literal.
func Mention(discordID string) string {
	if numericIDRe.MatchString(discordID) {
		return fmt.Sprintf("<@%s>", discordID)
	}
	return fmt.Sprintf("**%s**", discordID)
}

func clampField(v string) string {
	if len(v) > fieldLimit {
		return v[:fieldLimit-3] + "..."
	}
	return v
}

func submissionEmbed(app *types.Application) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "New Department Application",
		Color: colorSubmitted,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Applicant", Value: fmt.Sprintf("%s (%s)", Mention(app.DiscordID), app.DisplayName)},
			{Name: "Department", Value: departments.DisplayName(app.Department), Inline: true},
			{Name: "Email", Value: app.Email, Inline: true},
			{Name: "Contact", Value: app.ContactHandle, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "IERP application portal",
		},
		Timestamp: app.SubmittedAt.Format(time.RFC3339),
	}
	if app.Phone != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Phone", Value: app.Phone, Inline: true,
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Motivation", Value: clampField(app.Motivation),
	})

	if dept, ok := departments.Get(app.Department); ok {
		for _, q := range dept.Supplemental {
			answer := app.Supplemental[q.Key]
			if answer == "" {
				continue
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  clampField(q.Prompt),
				Value: clampField(answer),
			})
			if len(embed.Fields) >= 25 {
				break
			}
		}
	}
	return embed
}
