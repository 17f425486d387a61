package notify_customer

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/notifications/models"
)

type NotificationService interface {
	PrepareReady(ctx context.Context, entryID int64) (*models.NotificationResponse, error)
	PrepareSoon(ctx context.Context, entryID int64) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
