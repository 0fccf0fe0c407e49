package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	reVolumeMenu = regexp.MustCompile(`^switch_volume_([0-9a-z]+)$`)
	reTrackMenu  = regexp.MustCompile(`^switch_minus_([0-9a-z]+)$`)
	reTrackPick  = regexp.MustCompile(`^minus_([0-9a-z]+)_([0-9a-z]+)$`)

	// Old clients may still hold keyboards with the setvol_ payload format,
	// those open the volume menu too
	reLegacyVolumeMenu = regexp.MustCompile(`^setvol_`)

	reVolumeStep = regexp.MustCompile(volumeStepPattern())
)

func volumeStepPattern() string {
	alts := make([]string, 0, len(volumeSteps))
	for _, step := range volumeSteps {
		alts = append(alts, strconv.Itoa(step))
	}

	return fmt.Sprintf(`^run_([0-9a-z]+)_([+-](?:%s))$`, strings.Join(alts, "|"))
}

// DispatchMessage routes an inbound chat message. Anything unrecognized is
// dropped without a reply.
func (b *Bot) DispatchMessage(ctx context.Context, in Inbound) {
	switch {
	case in.FileID != "":
		b.onVoice(ctx, in)
	case strings.HasPrefix(in.Text, "/start") && in.Private:
		b.onStart(ctx, in)
	case strings.HasPrefix(in.Text, "/stats"):
		b.onStats(ctx, in)
	}
}

// DispatchCallback routes an inline button press by its payload. Payloads
// that match no pattern are ignored, malformed steps or selectors never
// reach a handler.
func (b *Bot) DispatchCallback(ctx context.Context, q Callback) {
	if m := reVolumeStep.FindStringSubmatch(q.Data); m != nil {
		step, _ := strconv.ParseFloat(m[2], 64)
		b.onVolumeStep(ctx, q, m[1], step/100)
		return
	}

	if m := reVolumeMenu.FindStringSubmatch(q.Data); m != nil {
		b.onVolumeMenu(ctx, q, m[1])
		return
	}

	if reLegacyVolumeMenu.MatchString(q.Data) {
		// The key sits in the last segment, same as the current format
		parts := strings.Split(q.Data, "_")
		b.onVolumeMenu(ctx, q, parts[len(parts)-1])
		return
	}

	if m := reTrackMenu.FindStringSubmatch(q.Data); m != nil {
		b.onTrackMenu(ctx, q, m[1])
		return
	}

	if m := reTrackPick.FindStringSubmatch(q.Data); m != nil {
		b.onTrackPick(ctx, q, m[1], m[2])
		return
	}

	zap.L().Debug("Unroutable callback payload", zap.String("data", q.Data))
}
