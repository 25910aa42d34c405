package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/galewarning/treetracker-wallet-api/pkg/logger"
)

// TransferExpiryJob cancels transfers that sat in requested or accepted
// for longer than the configured TTL. Tokens are never touched: a
// pending transfer holds no custody, so cancelling is a pure state write.
type TransferExpiryJob struct {
	repo     domainRepos.TransferRepository
	ttl      time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewTransferExpiryJob(repo domainRepos.TransferRepository, ttl, interval time.Duration) *TransferExpiryJob {
	return &TransferExpiryJob{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *TransferExpiryJob) Start(ctx context.Context) {
	if j.ttl <= 0 {
		logger.Info(ctx, "transfer expiry sweep disabled")
		return
	}

	logger.Info(ctx, "starting transfer expiry sweep",
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "transfer expiry sweep stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "transfer expiry sweep stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *TransferExpiryJob) Stop() {
	close(j.stop)
}

func (j *TransferExpiryJob) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.ttl)

	stale, err := j.repo.GetStalePending(ctx, cutoff, 100)
	if err != nil {
		logger.Error(ctx, "fetching stale transfers failed", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(stale))
	for _, t := range stale {
		ids = append(ids, t.ID)
	}

	if err := j.repo.CancelTransfers(ctx, ids); err != nil {
		logger.Error(ctx, "cancelling stale transfers failed", zap.Error(err))
		return
	}

	logger.Info(ctx, "cancelled stale transfers", zap.Int("count", len(ids)))
}
