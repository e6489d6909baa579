// Package mailer delivers account emails over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
)

const resetSubject = "Password reset"

// SMTPNotifier implements service.Notifier over plain SMTP with STARTTLS.
// It opens a fresh connection per message; the service sends too little
// mail to justify connection pooling.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	timeout  time.Duration

	// baseURL is the public base URL used to build reset links.
	baseURL string

	// resetTokenDuration is only used to tell the recipient how long the
	// link stays valid.
	resetTokenDuration time.Duration

	logger *logger.Logger
}

// NewSMTPNotifier constructs an SMTPNotifier from the mail and application
// configuration.
func NewSMTPNotifier(mailCfg config.Mail, appCfg config.App, logger *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:               mailCfg.Host,
		port:               mailCfg.Port,
		username:           mailCfg.Username,
		password:           mailCfg.Password,
		from:               mailCfg.From,
		fromName:           mailCfg.FromName,
		timeout:            mailCfg.Timeout,
		baseURL:            appCfg.BaseURL,
		resetTokenDuration: appCfg.ResetTokenDuration,
		logger:             logger,
	}
}

// SendResetEmail sends the password reset link for token to the given
// address. The message is plain text; the link follows the
// {baseURL}/auth/reset/{token} route served by the HTTP layer.
func (n *SMTPNotifier) SendResetEmail(ctx context.Context, to string, token string) error {
	log := logger.FromContext(ctx)

	msg := n.buildResetMessage(to, n.resetLink(token))

	log.Debug().Str("to", to).Str("host", n.host).Msg("sending reset email")

	if err := n.send(to, []byte(msg)); err != nil {
		log.Err(err).Str("to", to).Msg("smtp delivery failed")
		return fmt.Errorf("smtp delivery failed: %w", err)
	}

	log.Info().Str("to", to).Msg("reset email sent")
	return nil
}

// resetLink builds the absolute reset URL for token, tolerating a trailing
// slash on the configured base URL.
func (n *SMTPNotifier) resetLink(token string) string {
	return fmt.Sprintf("%s/auth/reset/%s", strings.TrimRight(n.baseURL, "/"), token)
}

// buildResetMessage assembles the full RFC 5322 message, headers included.
func (n *SMTPNotifier) buildResetMessage(to, link string) string {
	fromHeader := n.from
	if n.fromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", n.fromName, n.from)
	}

	body := fmt.Sprintf(
		"Hello,\r\n"+
			"to reset your password, follow the link below:\r\n"+
			"%s\r\n"+
			"If you did not request a password reset, ignore this email.\r\n"+
			"(valid for %d minutes)\r\n",
		link, int(n.resetTokenDuration.Minutes()),
	)

	return strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", resetSubject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")
}

// send performs a complete SMTP exchange: dial with a timeout, upgrade to
// TLS when the server offers STARTTLS, authenticate, and submit the
// message. The connection deadline covers the whole exchange so a stalled
// server cannot hang the request.
func (n *SMTPNotifier) send(to string, msg []byte) error {
	addr := net.JoinHostPort(n.host, fmt.Sprint(n.port))

	conn, err := net.DialTimeout("tcp", addr, n.timeout)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(n.timeout))

	c, err := smtp.NewClient(conn, n.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
			return err
		}
	}

	if n.username != "" {
		auth := smtp.PlainAuth("", n.username, n.password, n.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(n.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
