package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/slot"
)

// Ledger единственная точка изменения доступности слотов.
// Методы не открывают собственных транзакций: изменения должны выполняться
// в транзакции вызывающего вместе с зависимым изменением бронирования.
type Ledger struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewLedger создает новый экземпляр реестра доступности
func NewLedger(slotRepo SlotRepository, logger Logger) *Ledger {
	return &Ledger{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Get возвращает слот, внутри транзакции строка блокируется
func (l *Ledger) Get(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, err := l.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		l.logger.Error("Ledger.Get: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}
	return slot, nil
}

// IsBookable сообщает, существует ли слот, не отменён ли он и свободен ли
func (l *Ledger) IsBookable(ctx context.Context, slotID int64) (bool, error) {
	slot, err := l.Get(ctx, slotID)
	if errors.Is(err, ErrSlotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return slot.IsBookable(), nil
}

// Reserve атомарно помечает слот занятым
// Если слот уже занят или отменён, возвращает ErrSlotUnavailable
func (l *Ledger) Reserve(ctx context.Context, slotID int64) error {
	if err := l.slotRepo.Reserve(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			l.logger.Warn("Ledger.Reserve: slot id=%d is not available", slotID)
			return ErrSlotUnavailable
		}
		l.logger.Error("Ledger.Reserve: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Reserve - repository error: %w", ErrInternal, err)
	}
	return nil
}

// Release возвращает слот в доступные
// Для отменённого слота ничего не делает: отменённый слот никогда не становится доступным
func (l *Ledger) Release(ctx context.Context, slotID int64) (bool, error) {
	released, err := l.slotRepo.Release(ctx, slotID)
	if err != nil {
		l.logger.Error("Ledger.Release: repository error for slot id=%d: %v", slotID, err)
		return false, fmt.Errorf("%w: Release - repository error: %w", ErrInternal, err)
	}
	if !released {
		l.logger.Info("Ledger.Release: slot id=%d is cancelled, availability unchanged", slotID)
	}
	return released, nil
}

// Cancel отменяет слоты, делает их недоступными и перезаписывает причину
// Повторная отмена допустима
func (l *Ledger) Cancel(ctx context.Context, slotIDs []int64, reason string) (int64, error) {
	cancelled, err := l.slotRepo.Cancel(ctx, slotIDs, reason)
	if err != nil {
		l.logger.Error("Ledger.Cancel: repository error for %d slots: %v", len(slotIDs), err)
		return 0, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}
	return cancelled, nil
}
