package queue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.QueueEntry, error)
	ListActive(ctx context.Context) ([]*domain.QueueEntry, error)
	ListActiveByBarber(ctx context.Context, barberID int64) ([]*domain.QueueEntry, error)
	FindActiveByPhone(ctx context.Context, phone string) (*domain.QueueEntry, error)
	CountByStatus(ctx context.Context, status domain.QueueStatus) (int, error)
	CountWaitingAhead(ctx context.Context, position int) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.QueueStatus) error
	SetCalled(ctx context.Context, id int64, calledAt time.Time) error
	SetCompleted(ctx context.Context, id int64, completedAt time.Time) error
	ShiftPositionsAfter(ctx context.Context, position int) error
	AverageCalledWaitMinutes(ctx context.Context, since time.Time) (float64, error)
}

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	CountAvailable(ctx context.Context) (int, error)
	HasOpenTimeClock(ctx context.Context, barberID int64, dayStart time.Time) (bool, error)
	HasOpenBreak(ctx context.Context, barberID int64) (bool, error)
}

// OrderRepository интерфейс репозитория истории заказов
type OrderRepository interface {
	CountInProgressByBarber(ctx context.Context, barberID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
