package status

import (
	"context"
	"time"

	"github.com/sst/ghosttext/internal/pubsub"
)

// Level represents the severity level of a status message
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

const EventStatusPublished pubsub.EventType = "status_published"

// StatusMessage is a transient notice rendered by the status bar. It never
// interrupts editing.
type StatusMessage struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Service defines the interface for the status service
type Service interface {
	pubsub.Subscriber[StatusMessage]
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Shutdown()
}

type service struct {
	broker *pubsub.Broker[StatusMessage]
	now    func() time.Time
}

func (s *service) Info(message string) {
	s.publish(LevelInfo, message)
}

func (s *service) Warn(message string) {
	s.publish(LevelWarn, message)
}

func (s *service) Error(message string) {
	s.publish(LevelError, message)
}

func (s *service) Debug(message string) {
	s.publish(LevelDebug, message)
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[StatusMessage] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Shutdown() {
	s.broker.Shutdown()
}

func (s *service) publish(level Level, message string) {
	s.broker.Publish(EventStatusPublished, StatusMessage{
		Level:     level,
		Message:   message,
		Timestamp: s.now(),
	})
}

// NewService creates a new status service
func NewService() Service {
	return &service{
		broker: pubsub.NewBroker[StatusMessage](),
		now:    time.Now,
	}
}
