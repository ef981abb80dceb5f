package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/hrms-dev/hrms/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
}

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeWelcome:       {file: "welcome_email.html", subject: "HRMS - Welcome aboard"},
	domain.MailTypeResetPassword: {file: "reset_password_otp_email.html", subject: "HRMS - Reset your password"},
}

var errUnsupportedMailType = errors.New("unsupported mail type")

// Sender is satisfied by *mail.Client.
type Sender interface {
	DialAndSend(messages ...*mail.Msg) error
}

type Worker struct {
	from      string
	sender    Sender
	templates map[string]*template.Template
}

// NewWorker parses every mail template found in templateDir up front.
func NewWorker(from string, sender Sender, templateDir string) (*Worker, error) {
	templates := make(map[string]*template.Template, len(mailTemplates))
	for mailType, mt := range mailTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, mt.file))
		if err != nil {
			return nil, fmt.Errorf("notify: parse %s template: %w", mailType, err)
		}
		templates[mailType] = tmpl
	}

	return &Worker{
		from:      from,
		sender:    sender,
		templates: templates,
	}, nil
}

// BuildMessage renders a queued mail request into a mail ready to send.
func (w *Worker) BuildMessage(body []byte) (*mail.Msg, error) {
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("decode mail message: %w", err)
	}

	mt, ok := mailTemplates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnsupportedMailType, mailMessage.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(w.from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(w.templates[mailMessage.Type], mailMessage.Data); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	msg.Subject(mt.subject)

	return msg, nil
}

// Handle acknowledges a delivery once its mail is sent. Malformed requests are
// dropped, send failures are put back on the queue.
func (w *Worker) Handle(d amqp.Delivery) {
	msg, err := w.BuildMessage(d.Body)
	if err != nil {
		slog.Error("failed to build mail", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.sender.DialAndSend(msg); err != nil {
		slog.Error("failed to send mail", "to", msg.GetToString(), "error", err)
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}
