package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/go-logfmt/logfmt"
	"github.com/google/uuid"
	"github.com/sst/ghosttext/internal/pubsub"
)

const (
	EventLogCreated pubsub.EventType = "log_created"

	defaultCapacity = 500
)

type Log struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Message    string
	Attributes map[string]string
}

type Service interface {
	pubsub.Subscriber[Log]

	Create(ctx context.Context, timestamp time.Time, level, message string, attributes map[string]string) error
	ListAll(ctx context.Context, limit int) ([]Log, error)
	Shutdown()
}

// service keeps the most recent entries in a fixed-size ring. Nothing is
// written to disk.
type service struct {
	mu       sync.RWMutex
	entries  []Log
	next     int
	full     bool
	broker   *pubsub.Broker[Log]
	capacity int
}

var (
	globalMu             sync.RWMutex
	globalLoggingService *service
)

// NewService returns a standalone log service holding up to capacity entries.
func NewService(capacity int) Service {
	return newService(capacity)
}

func newService(capacity int) *service {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &service{
		entries:  make([]Log, capacity),
		broker:   pubsub.NewBroker[Log](),
		capacity: capacity,
	}
}

// InitService installs the process-wide log service fed by NewSlogWriter.
func InitService() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggingService != nil {
		return fmt.Errorf("logging service already initialized")
	}
	globalLoggingService = newService(defaultCapacity)
	return nil
}

func GetService() Service {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLoggingService == nil {
		return nil
	}
	return globalLoggingService
}

func (s *service) Create(ctx context.Context, timestamp time.Time, level, message string, attributes map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if level == "" {
		level = "info"
	}
	if attributes == nil {
		attributes = make(map[string]string)
	}

	log := Log{
		ID:         uuid.New().String(),
		Timestamp:  timestamp,
		Level:      level,
		Message:    message,
		Attributes: attributes,
	}

	s.mu.Lock()
	s.entries[s.next] = log
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	s.broker.Publish(EventLogCreated, log)
	return nil
}

// ListAll returns up to limit of the newest entries, oldest first. A
// non-positive limit returns everything retained.
func (s *service) ListAll(ctx context.Context, limit int) ([]Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var logs []Log
	if s.full {
		logs = append(logs, s.entries[s.next:]...)
	}
	logs = append(logs, s.entries[:s.next]...)

	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	return logs, nil
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Shutdown() {
	s.broker.Shutdown()
}

type slogWriter struct {
	svc func() *service
}

// Write decodes logfmt records produced by slog.TextHandler, e.g.
// time=2024-05-09T12:34:56.789-05:00 level=INFO msg="suggestion shown" request_id=3
func (sw *slogWriter) Write(p []byte) (n int, err error) {
	svc := sw.svc()

	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		var (
			timestamp    time.Time
			hasTimestamp bool
			level        string
			message      string
		)
		attributes := make(map[string]string)

		for d.ScanKeyval() {
			key := string(d.Key())
			value := string(d.Value())

			switch key {
			case "time":
				parsed, timeErr := time.Parse(time.RFC3339Nano, value)
				if timeErr != nil {
					parsed = time.Now()
				}
				timestamp = parsed
				hasTimestamp = true
			case "level":
				level = strings.ToLower(value)
			case "msg", "message":
				message = value
			default:
				attributes[key] = value
			}
		}
		if d.Err() != nil {
			return len(p), fmt.Errorf("logfmt.ScanRecord: %w", d.Err())
		}
		if !hasTimestamp {
			timestamp = time.Now()
		}

		if svc == nil {
			continue
		}
		if err := svc.Create(context.Background(), timestamp, level, message, attributes); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR [logging.slogWriter]: failed to store log: %v\n", err)
		}
	}
	if d.Err() != nil {
		return len(p), fmt.Errorf("logfmt.ScanRecord final: %w", d.Err())
	}
	return len(p), nil
}

// NewSlogWriter returns an io.Writer for slog.TextHandler that feeds the
// global log service. Records written before InitService are dropped.
func NewSlogWriter() io.Writer {
	return &slogWriter{svc: func() *service {
		globalMu.RLock()
		defer globalMu.RUnlock()
		return globalLoggingService
	}}
}

// RecoverPanic is a common function to handle panics gracefully.
// It logs the error, creates a panic log file with stack trace,
// and executes an optional cleanup function.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error(fmt.Sprintf("Panic in %s: %v", name, r))

		timestamp := time.Now().Format("20060102-150405")
		filename := filepath.Join(os.TempDir(), fmt.Sprintf("ghosttext-panic-%s-%s.log", name, timestamp))

		file, err := os.Create(filename)
		if err != nil {
			slog.Error(fmt.Sprintf("Failed to create panic log file '%s': %v", filename, err))
		} else {
			defer file.Close()
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", string(debug.Stack()))
			slog.Info(fmt.Sprintf("Panic details written to %s", filename))
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
