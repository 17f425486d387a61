package call_customer

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type QueueService interface {
	Call(ctx context.Context, entryID int64) (*models.CallResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
