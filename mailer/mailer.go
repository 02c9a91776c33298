// Package mailer sends bulk upload completion reports over SMTP. Missing
// SMTP configuration downgrades delivery to a warning so jobs never fail
// on mail problems.
package mailer

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"dcim/config"
	"dcim/logutils"
)

// Mailer holds the SMTP settings for one delivery endpoint.
type Mailer struct {
	host      string
	port      int
	fromEmail string
	username  string
	password  string
	useSSL    bool
	useTLS    bool
	timeout   time.Duration
}

// New builds a Mailer from the loaded configuration.
func New(cfg *config.Config) *Mailer {
	timeout := time.Duration(cfg.SMTP.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Mailer{
		host:      cfg.SMTP.Host,
		port:      cfg.SMTP.Port,
		fromEmail: cfg.SMTP.FromEmail,
		username:  cfg.SMTP.Username,
		password:  cfg.SMTP.Password,
		useSSL:    cfg.SMTP.UseSSL,
		useTLS:    cfg.SMTP.UseTLS,
		timeout:   timeout,
	}
}

// NormalizeRecipients trims, drops empties and deduplicates while keeping
// first-seen order.
func NormalizeRecipients(recipients []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		key := strings.ToLower(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Attachment is a file carried by an outgoing message.
type Attachment struct {
	Filename string
	Data     []byte
}

// Send delivers one message. Missing recipients, host or sender address
// log a warning and return nil so callers never fail on mail delivery.
func (m *Mailer) Send(recipients []string, subject, body string, attachments ...Attachment) error {
	recipients = NormalizeRecipients(recipients)
	if len(recipients) == 0 {
		logutils.Log.Warn("mail skipped: no recipients")
		return nil
	}
	if m.host == "" || m.fromEmail == "" {
		logutils.Log.Warn("mail skipped: smtp host or sender not configured")
		return nil
	}

	msg := m.buildMessage(recipients, subject, body, attachments)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if m.useSSL {
		return m.sendSSL(addr, auth, recipients, msg)
	}
	return m.sendPlain(addr, auth, recipients, msg)
}

func (m *Mailer) sendPlain(addr string, auth smtp.Auth, recipients []string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if m.useTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return err
			}
		}
	}
	return m.transmit(client, auth, recipients, msg)
}

func (m *Mailer) sendSSL(addr string, auth smtp.Auth, recipients []string, msg []byte) error {
	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()
	return m.transmit(client, auth, recipients, msg)
}

func (m *Mailer) transmit(client *smtp.Client, auth smtp.Auth, recipients []string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(m.fromEmail); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const mimeBoundary = "dcim-mail-boundary"

func (m *Mailer) buildMessage(recipients []string, subject, body string, attachments []Attachment) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(body)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mimeBoundary)
	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	for _, att := range attachments {
		fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
		b.WriteString("Content-Type: application/octet-stream\r\n")
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename)
		encoded := base64.StdEncoding.EncodeToString(att.Data)
		for len(encoded) > 76 {
			b.WriteString(encoded[:76])
			b.WriteString("\r\n")
			encoded = encoded[76:]
		}
		b.WriteString(encoded)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}
