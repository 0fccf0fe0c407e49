package bot

import (
	"fmt"

	"bitwise74/minus-bot/model"
)

// Symmetric volume adjustment steps, in percentage points
var volumeSteps = []int{30, 50, 70}

// rootKeyboard is the two-row menu attached to every delivered mix: current
// volume on top, current backing track below.
func (b *Bot) rootKeyboard(a *model.Audio) Keyboard {
	return Keyboard{
		{{
			Text: fmt.Sprintf("🔈 Громкость %.0f%%", a.VolumeLevel*100),
			Data: "switch_volume_" + a.PublicKey,
		}},
		{{
			Text: "🎵 Минус: " + b.Tracks.Title(a.Minus),
			Data: "switch_minus_" + a.PublicKey,
		}},
	}
}

func volumeKeyboard(key string) Keyboard {
	kb := make(Keyboard, 0, len(volumeSteps))

	for _, step := range volumeSteps {
		kb = append(kb, []Button{
			{Text: fmt.Sprintf("🔈 -%d%%", step), Data: fmt.Sprintf("run_%s_-%d", key, step)},
			{Text: fmt.Sprintf("🔊 +%d%%", step), Data: fmt.Sprintf("run_%s_+%d", key, step)},
		})
	}

	return kb
}

func (b *Bot) trackKeyboard(key string) Keyboard {
	selectors := b.Tracks.Selectors()
	kb := make(Keyboard, 0, len(selectors))

	for _, sel := range selectors {
		kb = append(kb, []Button{
			{Text: "🎵 " + b.Tracks.Title(sel), Data: fmt.Sprintf("minus_%s_%s", key, sel)},
		})
	}

	return kb
}
