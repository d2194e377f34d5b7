package models

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Request модели

// CreateGameRequest запрос на создание игры
type CreateGameRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	MaxPlayers int    `json:"maxPlayers"`
}

// Response модели

// GameResponse ответ с данными игры
type GameResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	MaxPlayers int       `json:"maxPlayers"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GameListResponse ответ со списком игр
type GameListResponse struct {
	Games []GameResponse `json:"games"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                 int64     `json:"id"`
	GameID             int64     `json:"gameId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	IsAvailable        bool      `json:"isAvailable"`
	IsCancelled        bool      `json:"isCancelled"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}

// SlotListResponse ответ со списком слотов игры на дату
type SlotListResponse struct {
	GameID int64          `json:"gameId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainGame конвертирует domain модель в DTO
func FromDomainGame(g *domain.Game) *GameResponse {
	if g == nil {
		return nil
	}
	return &GameResponse{
		ID:         g.ID,
		Name:       g.Name,
		Type:       string(g.Type),
		MaxPlayers: g.MaxPlayers,
		Status:     string(g.Status),
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// FromDomainGameList конвертирует список domain моделей в DTO
func FromDomainGameList(games []*domain.Game) *GameListResponse {
	resp := &GameListResponse{Games: make([]GameResponse, 0, len(games))}
	for _, g := range games {
		resp.Games = append(resp.Games, *FromDomainGame(g))
	}
	return resp
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:                 s.ID,
		GameID:             s.GameID,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		IsAvailable:        s.IsAvailable,
		IsCancelled:        s.IsCancelled,
		CancellationReason: s.CancellationReason,
	}
}
