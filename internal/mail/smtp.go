package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer шлёт письма обычным SMTP с PLAIN-аутентификацией.
type SMTPMailer struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	senderName string
}

func NewSMTPMailer(host string, port int, username, password, from, senderName string) *SMTPMailer {
	return &SMTPMailer{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		from:       from,
		senderName: senderName,
	}
}

func (m *SMTPMailer) SendVerificationCode(to string, code int) error {
	subject := "Medoka - Verify your email"
	html := fmt.Sprintf(`<div>
  <p>Thanks for registering with Medoka.</p>
  <p>Please use the following verification code to verify your email: <b>%06d</b></p>
</div>`, code)
	text := fmt.Sprintf("Thanks for registering with Medoka.\r\nYour verification code: %06d\r\nThe code expires in 15 minutes.", code)
	return m.send(to, subject, text, html)
}

func (m *SMTPMailer) SendRecoveryLink(to, url string) error {
	subject := "Medoka - Recover your account"
	html := fmt.Sprintf(`<div>
  <p>You have requested to recover your account.</p>
  <p>Please use the following link to recover your account: <a href="%s">Recover your account</a></p>
</div>`, url)
	text := fmt.Sprintf("You have requested to recover your account.\r\nRecovery link: %s\r\nThe link expires in one hour.", url)
	return m.send(to, subject, text, html)
}

// send собирает multipart-письмо (text + html) и отправляет одним вызовом.
func (m *SMTPMailer) send(to, subject, text, html string) error {
	from := m.from
	if m.senderName != "" {
		from = fmt.Sprintf("%s <%s>", m.senderName, m.from)
	}

	const boundary = "medoka-mail-boundary"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
