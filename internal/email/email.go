package email

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Sender delivers one message. The alert sweep depends on this interface
// so tests can record messages instead of dialing a relay.
type Sender interface {
	Send(from, to, subject, htmlBody, textBody string) error
}

// SMTPMailer sends through an SMTP relay configured from the environment.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass}
}

// Send delivers a multipart text+HTML message. Missing relay credentials
// surface here, at send time, so a deployment without SMTP still boots
// and only the sweep fails.
func (m *SMTPMailer) Send(from, to, subject, htmlBody, textBody string) error {
	if m.Host == "" || m.User == "" || m.Pass == "" {
		return errors.New("SMTP env belum lengkap (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS)")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	// Port 465 is implicit TLS; everything else negotiates STARTTLS.
	d.SSL = m.Port == 465

	return d.DialAndSend(msg)
}
