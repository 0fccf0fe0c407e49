package bot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bitwise74/minus-bot/model"
	"bitwise74/minus-bot/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Minimal ID3 header so the downloaded file passes audio detection
var fakeVoiceBody = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x21"), make([]byte, 64)...)

type sentVoice struct {
	chatID  int64
	path    string
	caption string
	kb      Keyboard
}

type answer struct {
	text  string
	alert bool
}

// fakeTransport records every outbound call so tests can assert on the
// exact conversation.
type fakeTransport struct {
	voices  []sentVoice
	replies []string
	deleted []int
	edits   []Keyboard
	answers []answer

	deleteErr   error
	downloadErr error
	lastMsgID   int
}

func (f *fakeTransport) SendVoice(_ context.Context, chatID int64, path, caption string, kb Keyboard) (int, error) {
	f.voices = append(f.voices, sentVoice{chatID: chatID, path: path, caption: caption, kb: kb})
	f.lastMsgID++
	return 1000 + f.lastMsgID, nil
}

func (f *fakeTransport) Reply(_ context.Context, _ int64, text string) error {
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return f.deleteErr
}

func (f *fakeTransport) EditReplyMarkup(_ context.Context, _ int64, _ int, kb Keyboard) error {
	f.edits = append(f.edits, kb)
	return nil
}

func (f *fakeTransport) AnswerCallback(_ context.Context, _, text string, showAlert bool) error {
	f.answers = append(f.answers, answer{text: text, alert: showAlert})
	return nil
}

func (f *fakeTransport) SendChatAction(_ context.Context, _ int64, _ string) error {
	return nil
}

func (f *fakeTransport) Download(_ context.Context, _, dst string) error {
	if f.downloadErr != nil {
		return f.downloadErr
	}

	return os.WriteFile(dst, fakeVoiceBody, 0o644)
}

func (f *fakeTransport) Username() string {
	return "minusbot"
}

type mixCall struct {
	source   string
	volume   float64
	selector string
}

type stubMixer struct {
	calls []mixCall
	err   error
}

func (m *stubMixer) Mix(_ context.Context, source string, volume float64, selector string) (string, error) {
	m.calls = append(m.calls, mixCall{source: source, volume: volume, selector: selector})

	if m.err != nil {
		return "", m.err
	}

	return "/tmp/mix_stub.mp3", nil
}

func newTestBot(t *testing.T) (*Bot, *fakeTransport, *stubMixer) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bot.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(model.User{}, model.Message{}, model.Audio{}))

	tr := &fakeTransport{}
	mx := &stubMixer{}

	return &Bot{
		DB:     database,
		T:      tr,
		Mixer:  mx,
		Tracks: service.NewTrackCatalog("files"),
		TmpDir: t.TempDir(),
		Admins: []int64{1},
	}, tr, mx
}

func seedUser(t *testing.T, b *Bot, id int64, volume float64) *model.User {
	t.Helper()

	user := model.User{ID: id, Bot: "minusbot", VolumeLevel: volume}
	require.NoError(t, b.DB.Create(&user).Error)

	return &user
}

// seedAudio creates an audio record whose source file actually exists, so
// handlers that verify the file on disk pass the check.
func seedAudio(t *testing.T, b *Bot, userID int64, key string, volume float64, minus string) *model.Audio {
	t.Helper()

	src := filepath.Join(b.TmpDir, "voice_"+key+".ogg")
	require.NoError(t, os.WriteFile(src, fakeVoiceBody, 0o644))

	audio := model.Audio{
		FileID:      "file_" + key,
		FilePath:    src,
		UserID:      &userID,
		PublicKey:   key,
		VolumeLevel: volume,
		Minus:       minus,
	}
	require.NoError(t, b.DB.Create(&audio).Error)

	return &audio
}

func reloadAudio(t *testing.T, b *Bot, key string) *model.Audio {
	t.Helper()

	var audio model.Audio
	require.NoError(t, b.DB.Where("public_key = ?", key).First(&audio).Error)

	return &audio
}

func reloadUser(t *testing.T, b *Bot, id int64) *model.User {
	t.Helper()

	var user model.User
	require.NoError(t, b.DB.First(&user, id).Error)

	return &user
}
