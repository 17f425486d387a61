package notifications

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.QueueEntry, error)
	CountWaitingAhead(ctx context.Context, position int) (int, error)
}

// Publisher интерфейс публикации подготовленных уведомлений в брокер
// nil-публикация допустима: сервис работает в режиме "только подготовка"
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
