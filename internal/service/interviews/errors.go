package interviews

import "errors"

var (
	// ErrInterviewNotFound возвращается, когда интервью не найдено
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrAlreadyCanceled возвращается при повторной отмене интервью
	ErrAlreadyCanceled = errors.New("interview already canceled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
