package create_interview

import "fmt"

// validateRequest валидирует входные данные запроса.
// Отсутствие времени начала здесь не ошибка: такой кандидат просто недоступен.
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.ApplicationID != nil && *req.ApplicationID <= 0 {
		return fmt.Errorf("%w: applicationID must be positive", ErrInvalidInput)
	}

	if req.EndTime != nil && !req.StartTime.IsZero() && !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return nil
}
