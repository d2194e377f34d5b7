package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GameBookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var gameColumns = []string{
	"id",
	"name",
	"type",
	"max_players",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с играми
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория игр
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую игру
func (r *Repository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("games").
		Columns("name", "type", "max_players", "status").
		Values(game.Name, game.Type, game.MaxPlayers, game.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return game, nil
}

// GetByID получает игру по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(gameColumns...).
		From("games").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	game, err := scanGame(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan game: %w", ErrScanRow, err)
	}

	return game, nil
}

// List получает список игр, опционально фильтруя по типу
func (r *Repository) List(ctx context.Context, gameType *domain.GameType) ([]*domain.Game, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(gameColumns...).
		From("games").
		OrderBy("name ASC")

	if gameType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *gameType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	games := make([]*domain.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return games, nil
}

// UpdateStatus обновляет статус игры
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("games").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(gameColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	game, err := scanGame(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return game, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var game domain.Game
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.Type,
		&game.MaxPlayers,
		&game.Status,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}
