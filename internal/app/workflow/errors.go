package workflow

import "errors"

// ErrNotFound — заявка или пакет не найдены
var ErrNotFound = errors.New("запись не найдена")

// ValidationError — нарушение бизнес-правила: не заполнено обязательное
// поле, пустая выборка, неполный выбор заявок пакета. Состояние базы
// при такой ошибке не меняется.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation сообщает, что ошибка — нарушение бизнес-правила
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
