package impl

import (
	"context"
	"log/slog"
	"time"

	"ratereview/internal/domain/repository"

	"github.com/pkg/errors"
)

// sweepInterval is how often expired pending registrations are purged.
const sweepInterval = time.Hour

// RegistrationSweeper periodically deletes pending registrations whose
// confirmation window has lapsed. Expired rows are already invisible to the
// callback path; the sweep keeps the table from growing without bound.
type RegistrationSweeper struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	interval  time.Duration
	done      chan struct{}
}

// NewRegistrationSweeper is the constructor for RegistrationSweeper.
func NewRegistrationSweeper(txManager repository.TransactionManager, logger *slog.Logger) *RegistrationSweeper {
	return &RegistrationSweeper{
		txManager: txManager,
		logger:    logger,
		interval:  sweepInterval,
		done:      make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (s *RegistrationSweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop terminates the sweep loop.
func (s *RegistrationSweeper) Stop() {
	close(s.done)
}

func (s *RegistrationSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("Failed to sweep expired registrations", slog.Any("error", err))
			}
		}
	}
}

// Sweep deletes every expired pending registration and logs how many rows
// were dropped.
func (s *RegistrationSweeper) Sweep(ctx context.Context) error {
	var dropped int64

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		count, err := repoFactory.PendingRegistrationRepo().DeleteExpired(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete expired pending registrations")
		}
		dropped = count

		return nil
	})
	if err != nil {
		return err
	}

	if dropped > 0 {
		s.logger.Info("Purged expired pending registrations", slog.Int64("count", dropped))
	}

	return nil
}
