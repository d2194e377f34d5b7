package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestSend_PublishesJSON(t *testing.T) {
	ch := &mockChannel{}
	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "notifications", RoutingKey, false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	var buf bytes.Buffer
	p := NewPublisher(ch, "notifications", time.Second, logger.NewWithWriter(&buf, "info"))

	p.Send(context.Background(), "alice@example.com", "Booking Cancelled", "Your booking #1 has been cancelled.")

	ch.AssertExpectations(t)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)

	var msg EmailMessage
	require.NoError(t, json.Unmarshal(published.Body, &msg))
	assert.Equal(t, "alice@example.com", msg.Recipient)
	assert.Equal(t, "Booking Cancelled", msg.Subject)
	assert.Equal(t, published.MessageId, msg.ID)
	assert.NotEmpty(t, msg.ID)
	assert.Contains(t, buf.String(), "queued email")
}

func TestSend_ErrorIsLoggedNotReturned(t *testing.T) {
	ch := &mockChannel{}
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed")).Once()

	var buf bytes.Buffer
	p := NewPublisher(ch, "notifications", time.Second, logger.NewWithWriter(&buf, "info"))

	assert.NotPanics(t, func() {
		p.Send(context.Background(), "bob@example.com", "Booking Cancelled", "body")
	})
	assert.Contains(t, buf.String(), "channel closed")
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logger.NewWithWriter(&buf, "info"))

	s.Send(context.Background(), "carol@example.com", "Booking Cancelled - No Check-in", "body")

	assert.Contains(t, buf.String(), "carol@example.com")
}
