package services

import (
	"fmt"
	"html"
	"log"
	"net/smtp"

	"github.com/oguzk/eticaret/app/models"
)

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg))
	if err != nil {
		log.Printf("Failed to send HTML email to %s: %v", to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// BuildContactEmailBody renders the inbox notification for a new contact
// message. User-supplied fields are escaped before interpolation.
func BuildContactEmailBody(msg *models.ContactMessage) string {
	name := derefOr(msg.Name, "-")
	phone := derefOr(msg.Phone, "-")
	subject := derefOr(msg.Subject, "-")
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>New Contact Message</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .header { background-color: #f8f8f8; padding: 10px 0; text-align: center; border-bottom: 1px solid #ddd; }
                .content { padding: 20px; }
                .field { margin: 8px 0; }
                .label { font-weight: bold; }
                .message { margin-top: 16px; padding: 10px; background-color: #e9f5ff; border-radius: 5px; white-space: pre-wrap; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h2>New Contact Message</h2>
                </div>
                <div class="content">
                    <p class="field"><span class="label">Name:</span> %s</p>
                    <p class="field"><span class="label">Email:</span> %s</p>
                    <p class="field"><span class="label">Phone:</span> %s</p>
                    <p class="field"><span class="label">Subject:</span> %s</p>
                    <div class="message">%s</div>
                </div>
            </div>
        </body>
        </html>
    `,
		html.EscapeString(name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		html.EscapeString(subject),
		html.EscapeString(msg.Message),
	)
}

// NotifyContactMessage mails the configured inbox about a new message.
// Delivery failures are logged and swallowed so the storefront request
// never fails because of SMTP.
func (m *Mailer) NotifyContactMessage(inbox string, msg *models.ContactMessage) {
	if inbox == "" || m.config.Host == "" {
		return
	}
	subject := "New contact message"
	if s := derefOr(msg.Subject, ""); s != "" {
		subject = "New contact message: " + s
	}
	if err := m.SendHTMLEmail(inbox, subject, BuildContactEmailBody(msg)); err != nil {
		log.Printf("Mailer: contact notification failed: %v", err)
	}
}
