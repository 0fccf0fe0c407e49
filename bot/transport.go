package bot

import "context"

// Button is one inline keyboard button. Data is the opaque callback payload
// routed by DispatchCallback when the button is pressed.
type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard, outer slice is rows.
type Keyboard [][]Button

// Inbound is the slice of an incoming chat message the handlers care about.
type Inbound struct {
	ChatID    int64
	MessageID int
	FromID    int64
	Text      string
	Private   bool

	// Voice or audio file reference, empty for text messages
	FileID string
}

// Callback is one inline button press.
type Callback struct {
	ID        string
	FromID    int64
	ChatID    int64
	MessageID int
	Data      string
}

// Sender identifies who triggered an update.
type Sender struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// Transport is the chat platform boundary. The real implementation talks to
// the Telegram Bot API, tests substitute a fake.
type Transport interface {
	// SendVoice uploads a local audio file and returns the new message ID
	SendVoice(ctx context.Context, chatID int64, path, caption string, kb Keyboard) (int, error)
	Reply(ctx context.Context, chatID int64, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	EditReplyMarkup(ctx context.Context, chatID int64, messageID int, kb Keyboard) error
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
	// Download fetches a platform file into dst on local storage
	Download(ctx context.Context, fileID, dst string) error
	Username() string
}
