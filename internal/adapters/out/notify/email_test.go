package notify_test

import (
	"errors"
	"net/smtp"
	"testing"

	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newEmail(t *testing.T, cfg notify.EmailConfig, sendErr error) (*notify.EmailChannel, *[]capturedMail) {
	t.Helper()
	var sent []capturedMail
	ch, err := notify.NewEmailChannel(cfg, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)})
		return sendErr
	})
	require.NoError(t, err)
	return ch, &sent
}

func TestEmailChannel_Confirmation(t *testing.T) {
	ch, sent := newEmail(t, notify.EmailConfig{
		Addr: "smtp.example:587", Username: "mailer", Password: "pw", From: "shop@example.com",
	}, nil)

	require.NoError(t, ch.Send(t.Context(), created(t)))

	require.Len(t, *sent, 1)
	m := (*sent)[0]
	assert.Equal(t, "smtp.example:587", m.addr)
	assert.NotNil(t, m.auth)
	assert.Equal(t, "shop@example.com", m.from)
	assert.Equal(t, []string{"aigerim@example.com"}, m.to)
	assert.Contains(t, m.msg, "Subject: =?utf-8?q?")
	assert.Contains(t, m.msg, "Hello, Aigerim!")
	assert.Contains(t, m.msg, "order #42 for 12 500 ₸")
	assert.Contains(t, m.msg, "The Flower Shop team")
}

func TestEmailChannel_Skips(t *testing.T) {
	ch, sent := newEmail(t, notify.EmailConfig{Addr: "localhost:25", From: "shop@example.com"}, nil)

	quick := created(t)
	quick.Order.QuickOrder = true
	require.NoError(t, ch.Send(t.Context(), quick))

	noEmail := created(t)
	noEmail.Order.Customer.Email = ""
	require.NoError(t, ch.Send(t.Context(), noEmail))

	require.NoError(t, ch.Send(t.Context(), ports.Notification{Kind: ports.NotificationStatusChanged, Order: orderState(t)}))

	assert.Empty(t, *sent)
}

func TestEmailChannel_Failure(t *testing.T) {
	ch, _ := newEmail(t, notify.EmailConfig{Addr: "localhost:25", From: "shop@example.com"}, errors.New("550 mailbox unavailable"))

	err := ch.Send(t.Context(), created(t))

	require.ErrorIs(t, err, errs.ErrNotificationFailed)
	assert.Contains(t, err.Error(), "550 mailbox unavailable")
}

func TestNewEmailChannel_Validation(t *testing.T) {
	_, err := notify.NewEmailChannel(notify.EmailConfig{From: "a@b.c"}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = notify.NewEmailChannel(notify.EmailConfig{Addr: "localhost:25"}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = notify.NewEmailChannel(notify.EmailConfig{Addr: "no-port", From: "a@b.c", Username: "u"}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
