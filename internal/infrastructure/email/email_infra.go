package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/vacation-shop/go-backend/internal/cfg"
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// EmailInfrastructure отправляет письма через SMTP. Если учётные данные
// SMTP не заданы, письма не уходят, а пишутся в лог (режим симуляции).
type EmailInfrastructure struct {
	cfg    *cfg.SMTPCfg
	dialer *gomail.Dialer
	logger logger.Logger
}

func NewEmailInfrastructure(cfg *cfg.SMTPCfg, logger logger.Logger) *EmailInfrastructure {
	infra := &EmailInfrastructure{
		cfg:    cfg,
		logger: logger,
	}

	if !infra.simulated() {
		infra.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return infra
}

// SendOrderConfirmation отправляет письмо с подтверждением заказа.
func (em *EmailInfrastructure) SendOrderConfirmation(ctx context.Context, req *usecase.OrderConfirmationReq) error {
	const op = "EmailInfrastructure.SendOrderConfirmation"

	subject := fmt.Sprintf("Order Confirmation - %s", req.OrderNumber)
	body := em.buildOrderConfirmationBody(req)

	if em.simulated() {
		em.logger.Infof("EMAIL SIMULATION: to=%s subject=%q", req.To, subject)
		em.logger.Debugf("EMAIL SIMULATION body: %s", body)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", em.cfg.SenderEmail, em.cfg.SenderName)
	msg.SetHeader("To", req.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() {
		done <- em.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(op, err)
		}
		return nil
	case <-ctx.Done():
		return e.Wrap(op, ctx.Err())
	}
}

// buildOrderConfirmationBody собирает HTML-тело письма.
func (em *EmailInfrastructure) buildOrderConfirmationBody(req *usecase.OrderConfirmationReq) string {
	var b strings.Builder

	b.WriteString("<h2>Thank you for your order!</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(req.CustomerName))
	fmt.Fprintf(&b, "<p>Your order <b>%s</b> has been received.</p>", html.EscapeString(req.OrderNumber))
	if req.OrderItems != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(req.OrderItems))
	}
	fmt.Fprintf(&b, "<p>Total: <b>%.2f</b></p>", float64(req.OrderTotal)/100)
	b.WriteString("<p>We wish you a great vacation!</p>")

	return b.String()
}

func (em *EmailInfrastructure) simulated() bool {
	return em.cfg.Username == "" || em.cfg.Password == ""
}
