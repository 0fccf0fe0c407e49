package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramTransport implements Transport over the Telegram Bot API.
type telegramTransport struct {
	api *tgbotapi.BotAPI
}

func (t *telegramTransport) Username() string {
	return t.api.Self.UserName
}

func (t *telegramTransport) SendVoice(ctx context.Context, chatID int64, path, caption string, kb Keyboard) (int, error) {
	v := tgbotapi.NewVoice(chatID, tgbotapi.FilePath(path))
	v.Caption = caption
	if kb != nil {
		v.ReplyMarkup = toMarkup(kb)
	}

	m, err := t.api.Send(v)
	if err != nil {
		return 0, err
	}

	return m.MessageID, nil
}

func (t *telegramTransport) Reply(ctx context.Context, chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *telegramTransport) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (t *telegramTransport) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, kb Keyboard) error {
	_, err := t.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, toMarkup(kb)))
	return err
}

func (t *telegramTransport) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = showAlert

	_, err := t.api.Request(cb)
	return err
}

func (t *telegramTransport) SendChatAction(ctx context.Context, chatID int64, action string) error {
	_, err := t.api.Request(tgbotapi.NewChatAction(chatID, action))
	return err
}

func (t *telegramTransport) Download(ctx context.Context, fileID, dst string) error {
	f, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("failed to resolve file, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Link(t.api.Token), nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file download failed with status %d", resp.StatusCode)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func toMarkup(kb Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))

	for _, row := range kb {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}

		rows = append(rows, btns)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
