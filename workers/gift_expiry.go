package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/services"
)

// PollGiftExpiry flips pending gifts past their expiry on a fixed interval.
// Claim attempts also expire gifts lazily; this sweep keeps inboxes clean
// for players who never try to claim.
func PollGiftExpiry(ctx context.Context, social *services.SocialService, pollInterval time.Duration) {
	log.Info().Dur("interval", pollInterval).Msg("starting gift expiry worker")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("gift expiry worker stopped")
			return
		case <-ticker.C:
			expired, err := social.ExpireOverdueGifts(ctx)
			if err != nil {
				log.Error().Err(err).Msg("gift expiry sweep failed")
				continue
			}
			if expired > 0 {
				log.Info().Int("expired", expired).Msg("expired overdue gifts")
			}
		}
	}
}
