package memstore

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/user"
)

// UserRepository in-memory аналог user.Repository
type UserRepository struct {
	s *Store
}

// Add добавляет пользователя, ID назначается автоматически
// В production пользователи создаются сервисом аутентификации
func (r *UserRepository) Add(ctx context.Context, u *domain.User) *domain.User {
	defer r.s.lock(ctx)()

	r.s.nextUserID++
	u.ID = r.s.nextUserID
	r.s.users[u.ID] = cloneUser(u)

	return u
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("users.GetByID"); err != nil {
		return nil, err
	}

	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) CountByExternalIDs(ctx context.Context, externalIDs []string) (int, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("users.CountByExternalIDs"); err != nil {
		return 0, err
	}

	wanted := make(map[string]struct{}, len(externalIDs))
	for _, id := range externalIDs {
		wanted[id] = struct{}{}
	}

	count := 0
	for _, u := range r.s.users {
		if _, ok := wanted[u.ExternalID]; ok {
			count++
		}
	}

	return count, nil
}
