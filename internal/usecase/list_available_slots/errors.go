package list_available_slots

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("list_available_slots: calendar not found")

	// ErrRangeTooLarge период длиннее допустимого
	ErrRangeTooLarge = errors.New("list_available_slots: date range is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_available_slots: internal error")
)
