package bootstrap

import (
	"context"
	"log/slog"

	"car-rental-platform/internal/infra/lock"
	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewVehicleLocker,
	),
)

// NewVehicleLocker falls back to NoopLocker when Redis is disabled.
func NewVehicleLocker(lc fx.Lifecycle, cfg config.Config) (shared.VehicleLocker, error) {
	if !cfg.Redis.Enabled {
		slog.Info("Redis disabled, booking serialised by row locks only")
		return lock.NoopLocker{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "failed to ping redis at %s", cfg.Redis.Addr)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			slog.Info("Closing redis client")
			return client.Close()
		},
	})

	return lock.NewRedisLocker(client, cfg.Booking), nil
}
