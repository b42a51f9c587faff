package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

func smtpPort() int {
	p, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if p == 0 {
		p = 587
	}
	return p
}

// SendMail delivers a single HTML message through the configured SMTP relay.
// Env is read per call so godotenv.Load in main is honored.
func SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpFrom := os.Getenv("SMTP_FROM") // e.g. "UJGSM Editorial Office <no-reply@ujgsm.org>"
	if smtpHost == "" || smtpFrom == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", smtpFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(smtpHost, smtpPort(), os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))

	// Mandatory STARTTLS on port 587 (Gmail/Office365 style relays)
	d.StartTLSPolicy = mail.MandatoryStartTLS

	d.TLSConfig = &tls.Config{
		ServerName:         smtpHost,
		InsecureSkipVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1", // dev only
	}

	return d.DialAndSend(m)
}
