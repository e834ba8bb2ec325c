package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailConfig struct {
	// Addr is host:port of the SMTP relay.
	Addr     string
	Username string
	Password string
	From     string
	ShopName string
}

// EmailChannel sends the order confirmation to the customer. Other kinds
// are not emailed.
type EmailChannel struct {
	cfg      EmailConfig
	auth     smtp.Auth
	sendMail SendMailFunc
}

var _ Channel = &EmailChannel{}

// NewEmailChannel uses smtp.SendMail when send is nil.
func NewEmailChannel(cfg EmailConfig, send SendMailFunc) (*EmailChannel, error) {
	if cfg.Addr == "" {
		return nil, errs.NewValueIsRequiredError("smtp address")
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("smtp sender")
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "Flower Shop"
	}
	if send == nil {
		send = smtp.SendMail
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("smtp address", err)
		}
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return &EmailChannel{cfg: cfg, auth: auth, sendMail: send}, nil
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Send(ctx context.Context, n ports.Notification) error {
	o := n.Order
	if n.Kind != ports.NotificationOrderCreated || o.QuickOrder || o.Customer.Email == "" {
		return nil
	}

	msg := e.confirmation(n)
	done := make(chan error, 1)
	go func() {
		done <- e.sendMail(e.cfg.Addr, e.auth, e.cfg.From, []string{o.Customer.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.NewNotificationFailedError(e.Name(), err)
		}
		return nil
	case <-ctx.Done():
		return errs.NewNotificationFailedError(e.Name(), ctx.Err())
	}
}

func (e *EmailChannel) confirmation(n ports.Notification) []byte {
	o := n.Order
	subject := fmt.Sprintf("Your order #%d is confirmed ❤️", o.ID)

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", o.Customer.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", n.At.UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hello, %s!\r\n\r\n", o.Customer.Name)
	fmt.Fprintf(&b, "We have received order #%d for %s.\r\n", o.ID, o.Totals.Total())
	fmt.Fprintf(&b, "The %s team is already putting your bouquet together and will send status updates.\r\n\r\n", e.cfg.ShopName)
	b.WriteString("Thank you for choosing us!\r\n")
	return b.Bytes()
}
