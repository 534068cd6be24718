package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail"
)

//go:embed templates/*
var templatesFS embed.FS

// Template names.
const (
	WelcomeTemplate = "user_welcome.tmpl"
	ReceiptTemplate = "reservation_receipt.tmpl"
)

const (
	sendAttempts = 3
	retryDelay   = 500 * time.Millisecond
)

// Mailer sends templated emails through an SMTP server.
type Mailer struct {
	dialer *mail.Dialer
	sender string
	funcs  template.FuncMap
}

// Message is a rendered email.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// New creates a Mailer. funcs are made available to every template.
func New(host string, port int, username, password, sender string, funcs template.FuncMap) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return &Mailer{
		dialer: dialer,
		sender: sender,
		funcs:  funcs,
	}
}

// Render executes the subject, plainBody and htmlBody blocks of
// templateName.
func (m *Mailer) Render(templateName string, data any) (*Message, error) {
	tmpl, err := template.New("email").Funcs(m.funcs).ParseFS(templatesFS, "templates/"+templateName)
	if err != nil {
		return nil, err
	}

	var out Message
	for _, part := range []struct {
		name string
		dst  *string
	}{
		{"subject", &out.Subject},
		{"plainBody", &out.PlainBody},
		{"htmlBody", &out.HTMLBody},
	} {
		buf := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(buf, part.name, data); err != nil {
			return nil, fmt.Errorf("mailer: %s of %s: %w", part.name, templateName, err)
		}
		*part.dst = buf.String()
	}
	return &out, nil
}

// Send renders templateName and delivers it to the recipient, retrying
// transient failures.
func (m *Mailer) Send(recipient, templateName string, data any) error {
	rendered, err := m.Render(templateName, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.PlainBody)
	msg.AddAlternative("text/html", rendered.HTMLBody)

	for i := 1; i <= sendAttempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if i < sendAttempts {
			time.Sleep(retryDelay)
		}
	}
	return err
}
