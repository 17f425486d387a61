package queue

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди не найдена
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (например, попытке завершить запись, которая еще не в обслуживании)
	ErrInvalidTransition = errors.New("invalid queue status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("queue service: internal error")
)
