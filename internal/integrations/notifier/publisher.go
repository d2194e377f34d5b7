package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher отправляет уведомления в RabbitMQ
// Доставкой писем занимается отдельный сервис, подписанный на RoutingKey
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	timeout  time.Duration
	log      Logger
}

// Dial подключается к брокеру и объявляет topic exchange
func Dial(url, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %q: %v", ErrConnect, exchange, err)
	}

	p := NewPublisher(ch, exchange, timeout, log)
	p.conn = conn
	return p, nil
}

// NewPublisher создает издателя поверх готового канала
func NewPublisher(ch Channel, exchange string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		log:      log,
	}
}

// Send публикует письмо
// Ошибка публикации только логируется: отмена бронирования уже зафиксирована и не откатывается
func (p *Publisher) Send(ctx context.Context, recipient, subject, body string) {
	if err := p.publish(ctx, recipient, subject, body); err != nil {
		p.log.Error("Notifier.Send: recipient=%s subject=%q: %v", recipient, subject, err)
		return
	}
	p.log.Info("Notifier.Send: queued email recipient=%s subject=%q", recipient, subject)
}

func (p *Publisher) publish(ctx context.Context, recipient, subject, body string) error {
	msg := EmailMessage{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает канал и соединение, если они были открыты через Dial
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if ch, ok := p.ch.(*amqp.Channel); ok {
		_ = ch.Close()
	}
	return p.conn.Close()
}
