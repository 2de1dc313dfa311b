package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendLeadNotification mails the sales inbox about a freshly captured lead.
func (s *EmailSender) SendLeadNotification(to, leadEmail, leadName, source string) error {
	name := leadName
	if name == "" {
		name = leadEmail
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", name, source))
	m.SetBody("text/plain", fmt.Sprintf(
		"A new lead was captured.\n\nName: %s\nEmail: %s\nSource: %s\n",
		leadName, leadEmail, source,
	))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP mail: %w", err)
	}

	return nil
}
