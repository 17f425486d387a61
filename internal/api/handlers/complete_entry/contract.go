package complete_entry

import "context"

type QueueService interface {
	Complete(ctx context.Context, entryID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
