package reclaimer

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/pkg/metrics"
)

// Scanner один проход освобождения неподтверждённых бронирований
type Scanner interface {
	Execute(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически запускает Scanner до отмены контекста
type Worker struct {
	scanner  Scanner
	interval time.Duration
	metrics  *metrics.Metrics
	logger   Logger
}

// New создает воркер. metrics может быть nil
func New(scanner Scanner, interval time.Duration, m *metrics.Metrics, logger Logger) *Worker {
	return &Worker{
		scanner:  scanner,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Start блокируется до отмены ctx
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Reclaimer: started interval=%s", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reclaimer: stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick выполняет один проход, ошибка или паника не останавливают цикл
func (w *Worker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Reclaimer: panic recovered: %v", r)
			w.metrics.ObserveReclaim(0, errPanic)
		}
	}()

	reclaimed, err := w.scanner.Execute(ctx)
	w.metrics.ObserveReclaim(reclaimed, err)
	if err != nil {
		w.logger.Error("Reclaimer: scan failed: %v", err)
		return
	}

	if reclaimed > 0 {
		w.logger.Info("Reclaimer: reclaimed bookings=%d", reclaimed)
	}
}
