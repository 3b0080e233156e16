package status

import (
	"log/slog"
	"sync"
)

// Manager holds the process-wide status service so that leaf packages can
// report without threading a service through every call.
type Manager struct {
	service Service
	mu      sync.RWMutex
}

var globalManager = &Manager{}

// InitManager installs the status service used by the package-level helpers.
func InitManager(service Service) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.service = service
	slog.Debug("status manager initialized")
}

// GetService returns the installed service, creating a default one on first use.
func GetService() Service {
	globalManager.mu.RLock()
	service := globalManager.service
	globalManager.mu.RUnlock()
	if service != nil {
		return service
	}

	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if globalManager.service == nil {
		globalManager.service = NewService()
	}
	return globalManager.service
}

func Info(message string) {
	GetService().Info(message)
}

func Warn(message string) {
	GetService().Warn(message)
}

func Error(message string) {
	GetService().Error(message)
}

func Debug(message string) {
	GetService().Debug(message)
}
