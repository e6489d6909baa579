package mailer

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newTestNotifier() *SMTPNotifier {
	return NewSMTPNotifier(
		config.Mail{
			Host:     "smtp.example.com",
			Port:     587,
			From:     "noreply@example.com",
			FromName: "Login Service",
			Timeout:  5 * time.Second,
		},
		config.App{
			BaseURL:            "https://login.example.com",
			ResetTokenDuration: 30 * time.Minute,
		},
		logger.Nop(),
	)
}

func TestBuildResetMessage_Headers(t *testing.T) {
	n := newTestNotifier()

	msg := n.buildResetMessage("kate@example.com", "https://login.example.com/auth/reset/tok-1")

	assert.Contains(t, msg, "From: Login Service <noreply@example.com>\r\n")
	assert.Contains(t, msg, "To: kate@example.com\r\n")
	assert.Contains(t, msg, "Subject: "+resetSubject+"\r\n")
	assert.Contains(t, msg, `Content-Type: text/plain; charset="UTF-8"`)

	// Headers and body must be separated by exactly one blank line.
	assert.Contains(t, msg, "\r\n\r\nHello,")
}

func TestBuildResetMessage_NoFromName(t *testing.T) {
	n := newTestNotifier()
	n.fromName = ""

	msg := n.buildResetMessage("kate@example.com", "https://x/auth/reset/t")

	assert.Contains(t, msg, "From: noreply@example.com\r\n")
	assert.NotContains(t, msg, "<noreply@example.com>")
}

func TestBuildResetMessage_BodyContent(t *testing.T) {
	n := newTestNotifier()

	link := "https://login.example.com/auth/reset/tok-abc"
	msg := n.buildResetMessage("kate@example.com", link)

	assert.Contains(t, msg, link)
	assert.Contains(t, msg, "ignore this email")
	assert.Contains(t, msg, "valid for 30 minutes")
}

func TestResetLink_TrimsTrailingSlash(t *testing.T) {
	n := newTestNotifier()

	assert.Equal(t, "https://login.example.com/auth/reset/tok-9", n.resetLink("tok-9"))

	n.baseURL = "https://login.example.com/"
	assert.Equal(t, "https://login.example.com/auth/reset/tok-9", n.resetLink("tok-9"))
}
