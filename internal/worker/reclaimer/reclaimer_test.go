package reclaimer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
	"github.com/m04kA/SMC-GameBookingService/pkg/metrics"
)

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) Execute(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newWorker(scanner Scanner, interval time.Duration) (*Worker, *metrics.Metrics) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	return New(scanner, interval, m, logger.NewWithWriter(io.Discard, "error")), m
}

func TestTick_CountsReclaimed(t *testing.T) {
	scanner := &mockScanner{}
	scanner.On("Execute", mock.Anything).Return(3, nil).Once()
	w, m := newWorker(scanner, time.Minute)

	w.tick(context.Background())

	scanner.AssertExpectations(t)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BookingsReclaimed.WithLabelValues()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReclaimerRuns.WithLabelValues("ok")))
}

func TestTick_ErrorIsSwallowed(t *testing.T) {
	scanner := &mockScanner{}
	scanner.On("Execute", mock.Anything).Return(0, errors.New("db is down")).Once()
	w, m := newWorker(scanner, time.Minute)

	assert.NotPanics(t, func() { w.tick(context.Background()) })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReclaimerRuns.WithLabelValues("error")))
}

func TestTick_RecoversPanic(t *testing.T) {
	scanner := &mockScanner{}
	scanner.On("Execute", mock.Anything).Run(func(mock.Arguments) { panic("nil map") }).Return(0, nil).Once()
	w, m := newWorker(scanner, time.Minute)

	assert.NotPanics(t, func() { w.tick(context.Background()) })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReclaimerRuns.WithLabelValues("error")))
}

func TestStart_RunsOnTicker(t *testing.T) {
	scanner := &mockScanner{}
	scanner.On("Execute", mock.Anything).Return(0, nil)
	w, _ := newWorker(scanner, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w.Start(ctx)

	assert.GreaterOrEqual(t, len(scanner.Calls), 1)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	scanner := &mockScanner{}
	w, _ := newWorker(scanner, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reclaimer did not stop on context cancel")
	}
	scanner.AssertNotCalled(t, "Execute", mock.Anything)
}
