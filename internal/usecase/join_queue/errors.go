package join_queue

import "errors"

var (
	// ErrNameRequired возвращается, когда имя клиента не указано
	ErrNameRequired = errors.New("customer name is required")

	// ErrNameTooLong возвращается при слишком длинном имени клиента
	ErrNameTooLong = errors.New("customer name is too long")

	// ErrPhoneTooLong возвращается при слишком длинном номере телефона
	ErrPhoneTooLong = errors.New("customer phone is too long")

	// ErrNotesTooLong возвращается при слишком длинных заметках
	ErrNotesTooLong = errors.New("service notes are too long")

	// ErrBarberNotFound возвращается, когда запрошенный мастер не найден
	ErrBarberNotFound = errors.New("requested barber not found")

	// ErrInternal возвращается при внутренних ошибках use case
	ErrInternal = errors.New("join_queue usecase: internal error")
)
