package get_barber_queue

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type QueueService interface {
	BarberQueue(ctx context.Context, barberID int64) (*models.BarberQueueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
