package models

import "errors"

// Application-wide standard errors
var (
	// Общие ошибки запроса
	ErrBadRequest = errors.New("bad request")

	// Генерация текста
	ErrRateLimited      = errors.New("upstream rate limited")
	ErrUpstreamFailure  = errors.New("upstream request failed")
	ErrGenerationFailed = errors.New("generation failed")

	// Доска
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError - ошибка валидации входных данных с сообщением для клиента.
// errors.Is(err, ErrBadRequest) для нее возвращает true.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrBadRequest
}

// NewValidationError создает ValidationError с заданным сообщением.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
