package get_queue

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type QueueService interface {
	ListActive(ctx context.Context) (*models.QueueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
