// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// StartScheduler runs the periodic jobs: daily tournament creation checked
// hourly (the creation itself is idempotent per day) and an immediate run at
// startup so a fresh deployment has boards from minute one.
func (s *TournamentService) StartScheduler(ctx context.Context) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.CreateDailyTournaments(ctx); err != nil {
				log.Error().Err(err).Msg("scheduled tournament creation failed")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	go func() {
		<-ctx.Done()
		_ = sched.Shutdown()
	}()
}
