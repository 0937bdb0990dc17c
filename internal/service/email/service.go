package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
)

// Service sends the outcome emails that accompany confirmed terminal
// decisions. Delivery is best-effort; callers ignore failures.
type Service interface {
	SendDecisionEmail(ctx context.Context, toEmail, toName, eventTitle string, action domain.Action, note string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
	tmpl   *template.Template
}

const decisionTemplate = `
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>{{.Headline}}</h2>
    <p>Hi {{.Name}},</p>
    <p>Your event request <strong>{{.EventTitle}}</strong> has been {{.Verb}}.</p>
    {{if .Note}}<p>Reviewer note: {{.Note}}</p>{{end}}
    <p>Open the UNITE dashboard at <a href="http://{{.Domain}}">{{.Domain}}</a> for details.</p>
  </body>
</html>`

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
		tmpl:   template.Must(template.New("decision").Parse(decisionTemplate)),
	}
}

func (s *service) SendDecisionEmail(ctx context.Context, toEmail, toName, eventTitle string, action domain.Action, note string) error {
	if s.cfg.ResendAPIKey == "" || toEmail == "" {
		return nil
	}

	verb, headline := decisionWording(action)
	if verb == "" {
		return nil
	}

	data := struct {
		Headline   string
		Name       string
		EventTitle string
		Verb       string
		Note       string
		Domain     string
	}{
		Headline:   headline,
		Name:       toName,
		EventTitle: eventTitle,
		Verb:       verb,
		Note:       note,
		Domain:     s.cfg.Domain,
	}
	if data.Name == "" {
		data.Name = "there"
	}
	if data.EventTitle == "" {
		data.EventTitle = "your event"
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render decision email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("UNITE <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: headline,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func decisionWording(action domain.Action) (verb, headline string) {
	switch action {
	case domain.ActionAccept, domain.ActionConfirm:
		return "approved", "Your event request was approved"
	case domain.ActionReject, domain.ActionDecline:
		return "rejected", "Your event request was rejected"
	case domain.ActionCancel:
		return "cancelled", "Your event request was cancelled"
	case domain.ActionReschedule:
		return "rescheduled", "Your event request was rescheduled"
	default:
		return "", ""
	}
}
