package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
)

// GameRepository in-memory аналог game.Repository
type GameRepository struct {
	s *Store
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("games.Create"); err != nil {
		return nil, err
	}

	for _, g := range r.s.games {
		if g.Name == game.Name {
			return nil, gameRepo.ErrDuplicateName
		}
	}

	r.s.nextGameID++
	now := time.Now().UTC()
	game.ID = r.s.nextGameID
	game.CreatedAt = now
	game.UpdatedAt = now
	r.s.games[game.ID] = cloneGame(game)

	return game, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("games.GetByID"); err != nil {
		return nil, err
	}

	g, ok := r.s.games[id]
	if !ok {
		return nil, gameRepo.ErrGameNotFound
	}
	return cloneGame(g), nil
}

func (r *GameRepository) List(ctx context.Context, gameType *domain.GameType) ([]*domain.Game, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("games.List"); err != nil {
		return nil, err
	}

	games := make([]*domain.Game, 0, len(r.s.games))
	for _, g := range r.s.games {
		if gameType != nil && g.Type != *gameType {
			continue
		}
		games = append(games, cloneGame(g))
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })

	return games, nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("games.UpdateStatus"); err != nil {
		return nil, err
	}

	g, ok := r.s.games[id]
	if !ok {
		return nil, gameRepo.ErrGameNotFound
	}
	g.Status = status
	g.UpdatedAt = time.Now().UTC()

	return cloneGame(g), nil
}
