package bot

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"bitwise74/minus-bot/model"
	"bitwise74/minus-bot/service"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// logUpdate records every update for stats: the sender gets a user row on
// first contact and each update becomes a message row. Failures here never
// block handling.
func (b *Bot) logUpdate(s *Sender, text string, raw []byte) {
	var userID *int64

	if s != nil {
		user := model.User{
			ID:           s.ID,
			Bot:          b.T.Username(),
			Username:     s.Username,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			LanguageCode: s.LanguageCode,
			VolumeLevel:  1.0,
		}

		if err := b.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			zap.L().Warn("Failed to upsert user", zap.Int64("user_id", s.ID), zap.Error(err))
		}

		userID = &s.ID
	}

	msg := model.Message{
		UserID: userID,
		Text:   text,
		Update: string(raw),
	}

	if err := b.DB.Create(&msg).Error; err != nil {
		zap.L().Warn("Failed to log update", zap.Error(err))
	}
}

var statsLabels = map[string]string{
	"day":   "За день",
	"week":  "За неделю",
	"month": "За месяц",
	"all":   "Всего",
}

// onStats replies with rolling creation counts. Callers outside the admin
// allow-list get no response at all.
func (b *Bot) onStats(ctx context.Context, in Inbound) {
	if !slices.Contains(b.Admins, in.FromID) {
		zap.L().Info("Unauthorized /stats request", zap.Int64("user_id", in.FromID))
		return
	}

	rows, err := service.CollectStats(b.DB)
	if err != nil {
		zap.L().Error("Failed to collect stats", zap.Error(err))
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика")

	for _, r := range rows {
		label, ok := statsLabels[r.Window]
		if !ok {
			label = r.Window
		}

		fmt.Fprintf(&sb, "\n%s: %d 👤 / %d 🔊 / %d ✉️", label, r.Users, r.Audios, r.Messages)
	}

	b.reply(ctx, in.ChatID, sb.String())
}
