// Package worker runs the periodic stamina restore.
package worker

import (
	"context"
	"fmt"
	"time"

	"arena-manager/internal/config"
	"arena-manager/internal/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

type Restorer interface {
	RestoreStamina(ctx context.Context, amount int) (int64, error)
}

type StaminaWorker struct {
	restorer  Restorer
	interval  time.Duration
	amount    int
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

func NewStaminaWorker(restorer Restorer, cfg *config.Config, logger zerolog.Logger) (*StaminaWorker, error) {
	return newStaminaWorker(restorer, cfg.StaminaRestoreInterval, cfg.StaminaRestoreAmount, logger)
}

func newStaminaWorker(restorer Restorer, interval time.Duration, amount int, logger zerolog.Logger) (*StaminaWorker, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	w := &StaminaWorker{
		restorer:  restorer,
		interval:  interval,
		amount:    amount,
		scheduler: sched,
		logger:    logger,
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.Run),
		gocron.WithName("stamina-restore"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule stamina restore: %w", err)
	}
	return w, nil
}

// Run performs one restore pass.
func (w *StaminaWorker) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RestoreTimeout)
	defer cancel()

	n, err := w.restorer.RestoreStamina(ctx, w.amount)
	if err != nil {
		w.logger.Error().Err(err).Msg("stamina restore failed")
		return
	}
	w.logger.Debug().Int64("players", n).Int("amount", w.amount).Msg("stamina restored")
}

func (w *StaminaWorker) Start() {
	w.logger.Info().Dur("interval", w.interval).Int("amount", w.amount).Msg("stamina restore scheduled")
	w.scheduler.Start()
}

func (w *StaminaWorker) Stop() error {
	return w.scheduler.Shutdown()
}
