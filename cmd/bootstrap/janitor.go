package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"dicetrails/internal/infra/repository"

	"go.uber.org/fx"
)

const idempotencySweepInterval = time.Hour

var JanitorModule = fx.Module("janitor",
	fx.Invoke(StartIdempotencyJanitor),
)

// StartIdempotencyJanitor periodically deletes expired idempotency keys.
// Claims self-heal on conflict, so the sweep only keeps the table small.
func StartIdempotencyJanitor(lc fx.Lifecycle, repo *repository.IdempotencyRepository) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(idempotencySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						deleted, err := repo.DeleteExpired(ctx)
						if err != nil {
							slog.Warn("failed to sweep expired idempotency keys", "error", err)
							continue
						}
						if deleted > 0 {
							slog.Info("swept expired idempotency keys", "deleted", deleted)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
