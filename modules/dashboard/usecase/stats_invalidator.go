package usecase

import (
	"context"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/log"
)

type statsInvalidator struct {
	cache  cache.Client
	logger log.Logger
}

// NewStatsInvalidator drops every cached dashboard month. A nil cache makes it a no-op.
func NewStatsInvalidator(cacheClient cache.Client, logger log.Logger) domain.StatsInvalidator {
	return &statsInvalidator{cache: cacheClient, logger: logger}
}

func (i *statsInvalidator) Invalidate(ctx context.Context) {
	if i.cache == nil {
		return
	}
	if err := i.cache.DeletePattern(ctx, keyPrefix+"*"); err != nil {
		i.logger.WarnContext(ctx, "Failed to invalidate dashboard cache", log.Error(err))
	}
}
