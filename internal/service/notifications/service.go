package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

const (
	SubjectNoCheckIn = "Booking Cancelled - No Check-in"
	BodyNoCheckIn    = "Your booking has been cancelled due to no check-in within 5 minutes of start time."

	SubjectCancelled = "Booking Cancelled"
)

// Service уведомляет владельцев об отмене бронирований
// Работает по принципу best-effort: ошибки только логируются
type Service struct {
	userRepo UserRepository
	sender   Sender
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(userRepo UserRepository, sender Sender, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// BookingsCancelled уведомляет владельцев всех переданных бронирований
func (s *Service) BookingsCancelled(ctx context.Context, bookings []*domain.Booking) {
	for _, b := range bookings {
		s.BookingCancelled(ctx, b)
	}
}

// BookingCancelled уведомляет владельца бронирования об отмене
func (s *Service) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Warn("BookingCancelled: cannot resolve owner user=%d of booking id=%d: %v", booking.UserID, booking.ID, err)
		return
	}
	if user.Email == "" {
		s.logger.Warn("BookingCancelled: user=%d has no email, booking id=%d", user.ID, booking.ID)
		return
	}

	subject, body := message(booking)
	s.sender.Send(ctx, user.Email, subject, body)
}

func message(b *domain.Booking) (subject, body string) {
	reason := ""
	if b.CancellationReason != nil {
		reason = *b.CancellationReason
	}

	if reason == domain.ReasonNoCheckIn {
		return SubjectNoCheckIn, BodyNoCheckIn
	}
	if reason == "" {
		return SubjectCancelled, fmt.Sprintf("Your booking #%d has been cancelled.", b.ID)
	}
	return SubjectCancelled, fmt.Sprintf("Your booking #%d has been cancelled. Reason: %s", b.ID, reason)
}
