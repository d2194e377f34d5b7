package notifier

import "time"

// RoutingKey ключ маршрутизации email-уведомлений в topic exchange
const RoutingKey = "notification.email"

// EmailMessage сообщение для сервиса рассылки
type EmailMessage struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
