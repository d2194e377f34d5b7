package notifier

import "context"

// LogSender пишет уведомления в лог, используется когда брокер отключён в конфигурации
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя, который только логирует
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, recipient, subject, body string) {
	s.log.Info("Notifier.Send: (disabled) recipient=%s subject=%q body=%q", recipient, subject, body)
}

// Close ничего не делает
func (s *LogSender) Close() error {
	return nil
}
