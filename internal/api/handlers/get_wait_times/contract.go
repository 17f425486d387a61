package get_wait_times

import (
	"context"

	usecase "github.com/m04kA/SMC-QueueService/internal/usecase/get_wait_times"
)

type GetWaitTimesUseCase interface {
	Execute(ctx context.Context) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
