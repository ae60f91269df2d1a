package worker

import (
	"context"

	"bobatcal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ShopCacheRefresher интерфейс сервиса, умеющего перечитывать кеш магазинов
type ShopCacheRefresher interface {
	RefreshShopCache(ctx context.Context) error
}

// CacheRefresher по расписанию перечитывает список магазинов из БД в Redis,
// чтобы кеш не протухал между инвалидациями
type CacheRefresher struct {
	cron       *cron.Cron
	catalogSvc ShopCacheRefresher
}

func NewCacheRefresher(catalogSvc ShopCacheRefresher) *CacheRefresher {
	return &CacheRefresher{
		cron:       cron.New(),
		catalogSvc: catalogSvc,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый прогрев
// Неудачный прогрев не фатален: кеш наполнится при первом запросе списка
func (r *CacheRefresher) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting shop cache refresher")

	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.catalogSvc.RefreshShopCache(ctx); err != nil {
			logger.Error().Err(err).Msg("Scheduled shop cache refresh failed")
			return
		}
		logger.Debug().Msg("Shop cache refreshed")
	})
	if err != nil {
		return err
	}

	r.cron.Start()

	if err := r.catalogSvc.RefreshShopCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial shop cache warm-up failed")
	}

	return nil
}

// Stop останавливает планировщик и дожидается завершения запущенных задач
func (r *CacheRefresher) Stop() {
	logger.Info().Msg("Stopping shop cache refresher")
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Shop cache refresher stopped")
}

// Entries возвращает зарегистрированные cron задачи
func (r *CacheRefresher) Entries() []cron.Entry {
	return r.cron.Entries()
}
