package join_queue

import (
	"context"

	usecase "github.com/m04kA/SMC-QueueService/internal/usecase/join_queue"
)

type JoinQueueUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
