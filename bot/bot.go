package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bitwise74/minus-bot/db"
	"bitwise74/minus-bot/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// Bot carries the pipeline dependencies. Handlers run one update at a time,
// the only shared mutable state is the database.
type Bot struct {
	DB     *gorm.DB
	T      Transport
	Mixer  service.Mixer
	Tracks *service.TrackCatalog
	TmpDir string
	Admins []int64

	api *tgbotapi.BotAPI
}

// New wires the bot from the global config: logger, database, Telegram
// connection, track catalog and mixer.
func New() (*Bot, error) {
	makeLogger()

	database, err := db.New()
	if err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(viper.GetString("telegram.token"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram, %w", err)
	}

	tracks := service.NewTrackCatalog(viper.GetString("audio.tracks_dir"))
	tmpDir := viper.GetString("audio.tmp_dir")

	ids := viper.GetIntSlice("telegram.admin_users")
	admins := make([]int64, 0, len(ids))
	for _, id := range ids {
		admins = append(admins, int64(id))
	}

	return &Bot{
		DB:     database,
		T:      &telegramTransport{api: api},
		Mixer:  service.NewFFmpegMixer(viper.GetString("ffmpeg.path"), tracks, tmpDir),
		Tracks: tracks,
		TmpDir: tmpDir,
		Admins: admins,
		api:    api,
	}, nil
}

// Run consumes updates until ctx is cancelled. Updates are handled one at a
// time, matching the single-worker model the mutation protocol assumes.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	zap.L().Info("Bot started", zap.String("username", b.T.Username()))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}

			b.handleUpdate(ctx, upd)
		}
	}
}

// handleUpdate logs the update for stats and routes it. A panicking handler
// must never take the loop down with it.
func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("Update handler panicked", zap.Any("panic", r))
		}
	}()

	raw, _ := json.Marshal(upd)

	switch {
	case upd.CallbackQuery != nil:
		q := upd.CallbackQuery
		b.logUpdate(senderOf(q.From), "", raw)

		if q.Message == nil {
			return
		}

		cb := Callback{
			ID:        q.ID,
			ChatID:    q.Message.Chat.ID,
			MessageID: q.Message.MessageID,
			Data:      q.Data,
		}
		if q.From != nil {
			cb.FromID = q.From.ID
		}

		b.DispatchCallback(ctx, cb)
	case upd.Message != nil:
		m := upd.Message
		b.logUpdate(senderOf(m.From), m.Text, raw)

		in := Inbound{
			ChatID:    m.Chat.ID,
			MessageID: m.MessageID,
			Text:      m.Text,
			Private:   m.Chat.IsPrivate(),
		}
		if m.From != nil {
			in.FromID = m.From.ID
		}
		if m.Voice != nil {
			in.FileID = m.Voice.FileID
		} else if m.Audio != nil {
			in.FileID = m.Audio.FileID
		}

		b.DispatchMessage(ctx, in)
	}
}

func senderOf(u *tgbotapi.User) *Sender {
	if u == nil {
		return nil
	}

	return &Sender{
		ID:           u.ID,
		Username:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if level, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
