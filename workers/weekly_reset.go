package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/store"
)

func isoWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// PollWeeklyReset zeroes guild weekly contribution totals and member weekly
// points when the ISO week rolls over. The check runs on every tick; the
// reset fires once per week boundary observed by this process.
func PollWeeklyReset(ctx context.Context, guilds store.GuildStore, members store.GuildMemberStore, pollInterval time.Duration) {
	log.Info().Dur("interval", pollInterval).Msg("starting weekly reset worker")

	lastWeek := isoWeekKey(time.Now())

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("weekly reset worker stopped")
			return
		case <-ticker.C:
			week := isoWeekKey(time.Now())
			if week == lastWeek {
				continue
			}

			if err := guilds.ResetWeeklyContributions(ctx); err != nil {
				log.Error().Err(err).Msg("failed to reset guild weekly contributions")
				continue
			}
			if err := members.ResetWeeklyPoints(ctx); err != nil {
				log.Error().Err(err).Msg("failed to reset member weekly points")
				continue
			}

			lastWeek = week
			log.Info().Str("week", week).Msg("weekly guild totals reset")
		}
	}
}
