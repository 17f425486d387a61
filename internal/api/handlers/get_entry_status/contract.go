package get_entry_status

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type QueueService interface {
	EntryStatus(ctx context.Context, entryID int64) (*models.EntryStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
