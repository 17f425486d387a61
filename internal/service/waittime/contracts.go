package waittime

import (
	"context"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	CountByStatus(ctx context.Context, status domain.QueueStatus) (int, error)
}

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	CountAvailable(ctx context.Context) (int, error)
}

// OrderRepository интерфейс репозитория истории заказов
type OrderRepository interface {
	AverageServiceMinutes(ctx context.Context, since time.Time) (float64, int, error)
}

// TimeProvider интерфейс получения текущего времени (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
