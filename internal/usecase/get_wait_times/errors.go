package get_wait_times

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках use case
	ErrInternal = errors.New("get_wait_times usecase: internal error")
)
