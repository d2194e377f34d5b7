package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/slot"
)

// SlotRepository in-memory аналог slot.Repository
type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.CreateBatch"); err != nil {
		return 0, err
	}

	created := 0
	for _, slot := range slots {
		if r.exists(slot.GameID, slot.StartTime) {
			continue
		}
		r.s.nextSlotID++
		now := time.Now().UTC()
		row := cloneSlot(slot)
		row.ID = r.s.nextSlotID
		row.CreatedAt = now
		row.UpdatedAt = now
		r.s.slots[row.ID] = row
		created++
	}

	return created, nil
}

func (r *SlotRepository) exists(gameID int64, start time.Time) bool {
	for _, sl := range r.s.slots {
		if sl.GameID == gameID && sl.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.GetByID"); err != nil {
		return nil, err
	}

	sl, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return cloneSlot(sl), nil
}

func (r *SlotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.List"); err != nil {
		return nil, err
	}

	gameIDs := make(map[int64]struct{}, len(filter.GameIDs))
	for _, id := range filter.GameIDs {
		gameIDs[id] = struct{}{}
	}

	slots := make([]*domain.Slot, 0)
	for _, sl := range r.s.slots {
		if len(gameIDs) > 0 {
			if _, ok := gameIDs[sl.GameID]; !ok {
				continue
			}
		}
		if filter.From != nil && sl.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !sl.StartTime.Before(*filter.To) {
			continue
		}
		if filter.StartAfter != nil && !sl.StartTime.After(*filter.StartAfter) {
			continue
		}
		if filter.OnlyAvailable && !sl.IsAvailable {
			continue
		}
		if (!filter.IncludeCancelled || filter.OnlyAvailable) && sl.IsCancelled {
			continue
		}
		slots = append(slots, cloneSlot(sl))
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].StartTime.Before(slots[j].StartTime)
		}
		return slots[i].GameID < slots[j].GameID
	})

	return slots, nil
}

func (r *SlotRepository) Reserve(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.Reserve"); err != nil {
		return err
	}

	sl, ok := r.s.slots[id]
	if !ok || !sl.IsAvailable || sl.IsCancelled {
		return slotRepo.ErrSlotNotAvailable
	}
	sl.IsAvailable = false
	sl.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *SlotRepository) Release(ctx context.Context, id int64) (bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.Release"); err != nil {
		return false, err
	}

	sl, ok := r.s.slots[id]
	if !ok || sl.IsCancelled {
		return false, nil
	}
	sl.IsAvailable = true
	sl.UpdatedAt = time.Now().UTC()

	return true, nil
}

func (r *SlotRepository) Cancel(ctx context.Context, ids []int64, reason string) (int64, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("slots.Cancel"); err != nil {
		return 0, err
	}

	var affected int64
	for _, id := range ids {
		sl, ok := r.s.slots[id]
		if !ok {
			continue
		}
		sl.IsCancelled = true
		sl.IsAvailable = false
		sl.CancellationReason = cloneString(&reason)
		sl.UpdatedAt = time.Now().UTC()
		affected++
	}

	return affected, nil
}
