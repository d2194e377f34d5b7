// Package memstore хранит игры, слоты, бронирования и пользователей в памяти.
// Реализует те же контракты и возвращает те же ошибки, что и PostgreSQL-репозитории,
// поэтому используется в тестах usecase-ов вместо базы данных.
//
// Транзакция удерживает мьютекс хранилища целиком, что даёт сериализуемое исполнение.
// При ошибке состояние откатывается к снимку, сделанному в начале транзакции.
package memstore

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

type txKey struct{}

// Store in-memory хранилище
type Store struct {
	mu sync.Mutex

	games    map[int64]*domain.Game
	slots    map[int64]*domain.Slot
	bookings map[int64]*domain.Booking
	users    map[int64]*domain.User

	nextGameID    int64
	nextSlotID    int64
	nextBookingID int64
	nextUserID    int64

	failures map[string]error
}

// New создаёт пустое хранилище
func New() *Store {
	return &Store{
		games:    make(map[int64]*domain.Game),
		slots:    make(map[int64]*domain.Slot),
		bookings: make(map[int64]*domain.Booking),
		users:    make(map[int64]*domain.User),
		failures: make(map[string]error),
	}
}

// Games возвращает репозиторий игр
func (s *Store) Games() *GameRepository { return &GameRepository{s: s} }

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository { return &SlotRepository{s: s} }

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Users возвращает репозиторий пользователей
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// FailNext заставляет следующий вызов операции op (например "bookings.Create") вернуть err
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
// Все транзакции хранилища и так выполняются последовательно
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.inTx(ctx, fn)
}

func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTransaction(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock берёт мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTransaction(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// injected возвращает подготовленную через FailNext ошибку, вызывается под мьютексом
func (s *Store) injected(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

type snapshot struct {
	games    map[int64]*domain.Game
	slots    map[int64]*domain.Slot
	bookings map[int64]*domain.Booking

	nextGameID    int64
	nextSlotID    int64
	nextBookingID int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		games:         make(map[int64]*domain.Game, len(s.games)),
		slots:         make(map[int64]*domain.Slot, len(s.slots)),
		bookings:      make(map[int64]*domain.Booking, len(s.bookings)),
		nextGameID:    s.nextGameID,
		nextSlotID:    s.nextSlotID,
		nextBookingID: s.nextBookingID,
	}
	for id, g := range s.games {
		snap.games[id] = cloneGame(g)
	}
	for id, sl := range s.slots {
		snap.slots[id] = cloneSlot(sl)
	}
	for id, b := range s.bookings {
		snap.bookings[id] = cloneBooking(b)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.games = snap.games
	s.slots = snap.slots
	s.bookings = snap.bookings
	s.nextGameID = snap.nextGameID
	s.nextSlotID = snap.nextSlotID
	s.nextBookingID = snap.nextBookingID
}
