package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vacation-shop/go-backend/internal/cfg"
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// Sweeper периодически пересчитывает статусы заказов по расписанию.
// Пересчёт идемпотентен, поэтому пропущенный или лишний запуск безопасен.
type Sweeper struct {
	orderUC usecase.OrderUC
	cfg     *cfg.SweepCfg
	cron    *cron.Cron
	logger  logger.Logger
}

func NewSweeper(orderUC usecase.OrderUC, cfg *cfg.SweepCfg, logger logger.Logger) *Sweeper {
	return &Sweeper{
		orderUC: orderUC,
		cfg:     cfg,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start запускает расписание и сразу выполняет первый проход, чтобы не
// ждать целый интервал после рестарта.
func (s *Sweeper) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.cfg.Interval)
	if _, err := s.cron.AddFunc(spec, func() { s.sweep(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Infof("Order status sweeper started: interval=%s batch=%d", s.cfg.Interval, s.cfg.BatchSize)

	go s.sweep(ctx)

	return nil
}

// Stop останавливает расписание и дожидается завершения текущего прохода.
func (s *Sweeper) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warnf("Sweeper stop timed out")
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	started := time.Now()

	updated, err := s.orderUC.SweepStatuses(ctx)
	if err != nil {
		s.logger.Errorf(err, "Order status sweep failed")
		return
	}

	s.logger.Infof("Order status sweep finished: updated=%d took=%s", updated, time.Since(started))
}
