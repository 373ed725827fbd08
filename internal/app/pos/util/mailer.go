package util

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier отправляет письмо когда stock товара достигает нуля
// Отправка best-effort: вызывающая сторона логирует ошибку и продолжает
type SMTPNotifier struct {
	addr     string // host:port SMTP сервера
	host     string
	from     string
	password string
	to       []string
}

// NewSMTPNotifier создает новый почтовый notifier
func NewSMTPNotifier(addr, from, password string, to ...string) *SMTPNotifier {
	host := addr
	if i := strings.Index(addr, ":"); i >= 0 {
		host = addr[:i]
	}

	return &SMTPNotifier{
		addr:     addr,
		host:     host,
		from:     from,
		password: password,
		to:       to,
	}
}

// NotifyStockDepleted отправляет уведомление об обнулении остатка товара
func (n *SMTPNotifier) NotifyStockDepleted(ctx context.Context, productName string) error {
	subject := "Alerta de stock: producto agotado"
	body := fmt.Sprintf(
		"El stock del producto %q ha llegado a 0 despues de una venta.\r\n"+
			"Por favor reabastecerlo pronto.\r\n\r\n"+
			"Este es un mensaje automatico.",
		productName,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.from, strings.Join(n.to, ", "), subject, body,
	))

	var auth smtp.Auth
	if n.password != "" {
		auth = smtp.PlainAuth("", n.from, n.password, n.host)
	}

	if err := smtp.SendMail(n.addr, auth, n.from, n.to, msg); err != nil {
		return fmt.Errorf("failed to send stock notification: %w", err)
	}

	return nil
}
