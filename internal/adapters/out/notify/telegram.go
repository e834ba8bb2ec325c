package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const DefaultTelegramAPI = "https://api.telegram.org"

// keyboardLayout is the button grid under order messages.
var keyboardLayout = [][]struct {
	Action link.Action
	Text   string
}{
	{{link.ActionConfirm, "✅ Complete"}, {link.ActionCancel, "🚫 Cancel"}},
	{{link.ActionRepeat, "🔁 Repeat"}, {link.ActionCall, "📞 Call me"}},
	{{link.ActionAddress, "🏠 Change address"}, {link.ActionPhoto, "📷 Delivery photo"}},
}

type TelegramConfig struct {
	APIURL   string
	BotToken string
	// ChatIDs may hold several comma separated ids.
	ChatIDs string
}

type TelegramChannel struct {
	client  *http.Client
	api     string
	token   string
	chatIDs []string
	links   ports.LinkBuilder
}

var _ Channel = &TelegramChannel{}

func NewTelegramChannel(client *http.Client, cfg TelegramConfig, links ports.LinkBuilder) (*TelegramChannel, error) {
	if cfg.BotToken == "" {
		return nil, errs.NewValueIsRequiredError("telegram bot token")
	}
	var chatIDs []string
	for _, id := range strings.Split(cfg.ChatIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			chatIDs = append(chatIDs, id)
		}
	}
	if len(chatIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("telegram chat id")
	}
	if client == nil {
		client = http.DefaultClient
	}
	api := strings.TrimRight(cfg.APIURL, "/")
	if api == "" {
		api = DefaultTelegramAPI
	}
	return &TelegramChannel{client: client, api: api, token: cfg.BotToken, chatIDs: chatIDs, links: links}, nil
}

func (t *TelegramChannel) Name() string { return "telegram" }

type inlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID                string       `json:"chat_id"`
	Text                  string       `json:"text"`
	ParseMode             string       `json:"parse_mode"`
	DisableWebPagePreview bool         `json:"disable_web_page_preview"`
	ReplyMarkup           *replyMarkup `json:"reply_markup,omitempty"`
}

// Send posts the message to every configured chat. A failure in one chat
// does not stop the others.
func (t *TelegramChannel) Send(ctx context.Context, n ports.Notification) error {
	text, withKeyboard := Render(n)
	var markup *replyMarkup
	if withKeyboard && t.links != nil {
		kb, err := t.keyboard(n.Order.ID)
		if err != nil {
			return errs.NewNotificationFailedError(t.Name(), err)
		}
		markup = kb
	}

	var failures []error
	for _, chatID := range t.chatIDs {
		req := sendMessageRequest{
			ChatID:                chatID,
			Text:                  text,
			ParseMode:             "HTML",
			DisableWebPagePreview: true,
			ReplyMarkup:           markup,
		}
		if err := t.post(ctx, req); err != nil {
			failures = append(failures, fmt.Errorf("chat %s: %w", chatID, err))
		}
	}
	if err := errors.Join(failures...); err != nil {
		return errs.NewNotificationFailedError(t.Name(), err)
	}
	return nil
}

func (t *TelegramChannel) keyboard(orderID int64) (*replyMarkup, error) {
	rows := make([][]inlineButton, 0, len(keyboardLayout))
	for _, layoutRow := range keyboardLayout {
		row := make([]inlineButton, 0, len(layoutRow))
		for _, btn := range layoutRow {
			target, err := t.links.URL(btn.Action, orderID)
			if err != nil {
				return nil, err
			}
			row = append(row, inlineButton{Text: btn.Text, URL: target})
		}
		rows = append(rows, row)
	}
	return &replyMarkup{InlineKeyboard: rows}, nil
}

func (t *TelegramChannel) post(ctx context.Context, payload sendMessageRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint := t.api + "/bot" + t.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// the url carries the bot token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return urlErr.Err
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram answered %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
