package get_barber_status

import (
	"context"

	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type QueueService interface {
	BarberStatus(ctx context.Context, barberID int64) (*models.BarberStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
