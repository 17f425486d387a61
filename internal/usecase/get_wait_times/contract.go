package get_wait_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	waittimeModels "github.com/m04kA/SMC-QueueService/internal/service/waittime/models"
)

// Estimator интерфейс сервиса оценки времени ожидания
type Estimator interface {
	Detailed(ctx context.Context) (*waittimeModels.DetailedEstimate, error)
}

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	ListCheckedInBetween(ctx context.Context, from, to time.Time) ([]*domain.QueueEntry, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
