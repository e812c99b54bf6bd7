// Package mail envía el correo de restablecimiento de contraseña.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/pkg/config"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

const resetSubject = "Restablecer contraseña"

// dialer abstrae gomail.Dialer para tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var (
	_ auth.Mailer = (*SMTPMailer)(nil)
	_ auth.Mailer = (*LogMailer)(nil)
)

// SMTPMailer envía por SMTP vía gomail.
type SMTPMailer struct {
	from   string
	dialer dialer
	log    *logger.Logger
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log.Component("mail"),
	}
}

// SendPasswordReset envía el enlace en texto plano y HTML.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := resetMessage(m.from, to, link)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", to, err)
	}
	m.log.Info().Str("to", to).Msg("correo de restablecimiento enviado")
	return nil
}

func resetMessage(from, to, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", "Para restablecer tu contraseña abre este enlace:\n\n"+link+
		"\n\nSi no lo solicitaste, ignora este mensaje.")
	msg.AddAlternative("text/html", `<p>Para restablecer tu contraseña abre este enlace:</p><p><a href="`+link+`">`+link+
		`</a></p><p>Si no lo solicitaste, ignora este mensaje.</p>`)
	return msg
}

// LogMailer registra el enlace en el log (SMTP_HOST vacío, desarrollo).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.Component("mail")}
}

// SendPasswordReset no envía nada; deja el enlace en el log.
func (m *LogMailer) SendPasswordReset(_ context.Context, to, link string) error {
	m.log.Warn().Str("to", to).Str("link", link).Msg("SMTP no configurado: enlace de restablecimiento solo en log")
	return nil
}

// New elige SMTP si hay host configurado; si no, LogMailer.
func New(cfg config.SMTPConfig, log *logger.Logger) auth.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg, log)
}
