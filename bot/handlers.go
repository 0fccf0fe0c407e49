// Package bot implements the mix request pipeline behind the chat
// transport: first mix on inbound voice, inline volume and backing track
// controls, and the re-render cycle they share.
package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"bitwise74/minus-bot/model"
	"bitwise74/minus-bot/service"
	"bitwise74/minus-bot/util"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	textWelcome = "Привет! Просто пришли мне войс\n\n" +
		"Если добавишь меня в чат - я смогу отвечать всем собеседникам войсами на войс 🔊"
	textNotFound     = "Не удалось найти войс. Перешли мне сообщение пожалуйста ещё раз"
	textTryAgain     = "Произошла ошибка, попробуй еще раз"
	textMixFailed    = "Не получилось обработать войс, попробуй ещё раз"
	textUnknownTrack = "Не знаю такой минус"
)

// Telegram chat action shown while a mix is being prepared
const actionRecordVoice = "record_voice"

// minVolume is the floor any cumulative negative delta clamps to
const minVolume = 0.01

func (b *Bot) onStart(ctx context.Context, in Inbound) {
	if err := b.T.Reply(ctx, in.ChatID, textWelcome); err != nil {
		zap.L().Warn("Failed to send welcome", zap.Error(err))
	}
}

// onVoice runs the first-mix flow: download, record creation with the
// owner's seed volume and the default track, mix, deliver with controls.
func (b *Bot) onVoice(ctx context.Context, in Inbound) {
	b.chatAction(ctx, in.ChatID)

	var user model.User

	err := b.DB.First(&user, in.FromID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to load user", zap.Int64("user_id", in.FromID), zap.Error(err))
		} else {
			zap.L().Warn("Could not find user for audio", zap.Int64("user_id", in.FromID))
		}

		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}

	src, err := os.CreateTemp(b.TmpDir, "voice_*.ogg")
	if err != nil {
		zap.L().Error("Failed to create source file", zap.Error(err))
		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}
	src.Close()

	if err := b.T.Download(ctx, in.FileID, src.Name()); err != nil {
		zap.L().Error("Failed to download media", zap.String("file_id", in.FileID), zap.Error(err))
		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}

	if !isAudioFile(src.Name()) {
		zap.L().Warn("Downloaded media isn't audio", zap.String("file_id", in.FileID))
		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}

	key, err := util.PublicKey()
	if err != nil {
		zap.L().Error("Failed to generate public key", zap.Error(err))
		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}

	audio := model.Audio{
		FileID:      in.FileID,
		FilePath:    src.Name(),
		UserID:      &user.ID,
		PublicKey:   key,
		VolumeLevel: user.VolumeLevel,
		Minus:       service.DefaultTrack,
	}

	if err := b.DB.Create(&audio).Error; err != nil {
		zap.L().Error("Failed to create audio record", zap.Error(err))
		b.reply(ctx, in.ChatID, textTryAgain)
		return
	}

	out, err := b.Mixer.Mix(ctx, audio.FilePath, audio.VolumeLevel, audio.Minus)
	if err != nil {
		zap.L().Warn("Mix failed", zap.String("public_key", audio.PublicKey), zap.Error(err))
		b.reply(ctx, in.ChatID, textMixFailed)
		return
	}

	if _, err := b.T.SendVoice(ctx, in.ChatID, out, b.caption(), b.rootKeyboard(&audio)); err != nil {
		zap.L().Error("Failed to send mixed voice", zap.Error(err))
	}
}

func (b *Bot) onVolumeMenu(ctx context.Context, q Callback, key string) {
	audio, ok := b.lookupAudio(ctx, q, key, false)
	if !ok {
		return
	}

	if err := b.T.EditReplyMarkup(ctx, q.ChatID, q.MessageID, volumeKeyboard(audio.PublicKey)); err != nil {
		zap.L().Warn("Failed to show volume menu", zap.Error(err))
	}
}

// onVolumeStep applies one ±step/100 delta. The audio's own volume is
// authoritative for the re-render, the user's preference is updated as the
// seed for future audios.
func (b *Bot) onVolumeStep(ctx context.Context, q Callback, key string, delta float64) {
	b.chatAction(ctx, q.ChatID)

	audio, ok := b.lookupAudio(ctx, q, key, true)
	if !ok {
		return
	}

	base := audio.VolumeLevel
	if base <= 0 {
		// Rows written before volume tracking moved onto the audio itself
		base = 1
	}

	volume := math.Round(math.Max(base+delta, minVolume)*100) / 100

	if err := b.DB.Model(&model.Audio{}).Where("id = ?", audio.ID).Update("volume_level", volume).Error; err != nil {
		zap.L().Error("Failed to persist audio volume", zap.String("public_key", key), zap.Error(err))
		b.alert(ctx, q.ID, textTryAgain)
		return
	}
	audio.VolumeLevel = volume

	if audio.UserID != nil {
		err := b.DB.Model(&model.User{}).Where("id = ?", *audio.UserID).Update("volume_level", volume).Error
		if err != nil {
			zap.L().Error("Failed to persist user volume seed", zap.Int64("user_id", *audio.UserID), zap.Error(err))
		}
	}

	b.answer(ctx, q.ID, fmt.Sprintf("Громкость: %.0f%%", volume*100))
	b.rerender(ctx, audio, q.ChatID, q.MessageID)
}

func (b *Bot) onTrackMenu(ctx context.Context, q Callback, key string) {
	audio, ok := b.lookupAudio(ctx, q, key, false)
	if !ok {
		return
	}

	if err := b.T.EditReplyMarkup(ctx, q.ChatID, q.MessageID, b.trackKeyboard(audio.PublicKey)); err != nil {
		zap.L().Warn("Failed to show track menu", zap.Error(err))
	}
}

func (b *Bot) onTrackPick(ctx context.Context, q Callback, key, selector string) {
	b.chatAction(ctx, q.ChatID)

	audio, ok := b.lookupAudio(ctx, q, key, true)
	if !ok {
		return
	}

	// The routing regexp only constrains the payload shape, the selector
	// still has to be a catalog member
	if !b.Tracks.Has(selector) {
		b.alert(ctx, q.ID, textUnknownTrack)
		return
	}

	if err := b.DB.Model(&model.Audio{}).Where("id = ?", audio.ID).Update("minus", selector).Error; err != nil {
		zap.L().Error("Failed to persist track selection", zap.String("public_key", key), zap.Error(err))
		b.alert(ctx, q.ID, textTryAgain)
		return
	}
	audio.Minus = selector

	b.answer(ctx, q.ID, "Минус: "+b.Tracks.Title(selector))
	b.rerender(ctx, audio, q.ChatID, q.MessageID)
}

// rerender runs the mixer with the audio's current parameters, delivers the
// fresh result with the root menu and then retires the superseded message.
// A failed delete means another action already replaced it, which is fine.
func (b *Bot) rerender(ctx context.Context, audio *model.Audio, chatID int64, prevMessageID int) {
	out, err := b.Mixer.Mix(ctx, audio.FilePath, audio.VolumeLevel, audio.Minus)
	if err != nil {
		zap.L().Warn("Mix failed", zap.String("public_key", audio.PublicKey), zap.Error(err))
		b.reply(ctx, chatID, textMixFailed)
		return
	}

	if _, err := b.T.SendVoice(ctx, chatID, out, b.caption(), b.rootKeyboard(audio)); err != nil {
		zap.L().Error("Failed to send mixed voice", zap.Error(err))
		return
	}

	if err := b.T.DeleteMessage(ctx, chatID, prevMessageID); err != nil {
		zap.L().Debug("Looks like the previous message was already deleted. Fine.",
			zap.Int("message_id", prevMessageID))
	}
}

// lookupAudio resolves a public key. With checkFile the source file must
// still exist on disk, the sweeper may have reclaimed it while the record
// stayed behind.
func (b *Bot) lookupAudio(ctx context.Context, q Callback, key string, checkFile bool) (*model.Audio, bool) {
	var audio model.Audio

	err := b.DB.Where("public_key = ?", key).First(&audio).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up audio", zap.String("public_key", key), zap.Error(err))
		}

		b.alert(ctx, q.ID, textNotFound)
		return nil, false
	}

	if checkFile {
		if _, err := os.Stat(audio.FilePath); err != nil {
			b.alert(ctx, q.ID, textNotFound)
			return nil, false
		}
	}

	return &audio, true
}

func isAudioFile(path string) bool {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}

	// Voice notes come as opus in an ogg container which detects as
	// application/ogg rather than audio/*
	return strings.HasPrefix(mt.String(), "audio/") || mt.Is("application/ogg")
}

func (b *Bot) caption() string {
	return "@" + b.T.Username()
}

func (b *Bot) chatAction(ctx context.Context, chatID int64) {
	if err := b.T.SendChatAction(ctx, chatID, actionRecordVoice); err != nil {
		zap.L().Debug("Failed to send chat action", zap.Error(err))
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.T.Reply(ctx, chatID, text); err != nil {
		zap.L().Warn("Failed to send reply", zap.Error(err))
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, text string) {
	if err := b.T.AnswerCallback(ctx, callbackID, text, false); err != nil {
		zap.L().Debug("Failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) alert(ctx context.Context, callbackID, text string) {
	if err := b.T.AnswerCallback(ctx, callbackID, text, true); err != nil {
		zap.L().Debug("Failed to answer callback", zap.Error(err))
	}
}
