package locks

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
)

var Module = fx.Module("locks",
	fx.Provide(provideClient),
	fx.Provide(NewLocker),
)

// provideClient returns nil when redis is not configured; the Locker degrades
// to lock-free operation in that case.
func provideClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, expansion locks disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}
