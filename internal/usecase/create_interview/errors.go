package create_interview

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_interview: slot not found")

	// ErrSlotNotAvailable время больше недоступно для записи
	ErrSlotNotAvailable = errors.New("create_interview: interview time is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_interview: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_interview: internal error")
)
