package domain

import (
	"errors"
	"fmt"
)

// FormatError ошибка формата поля анкеты (birthday, birth_time)
type FormatError struct {
	Field  string
	Value  string
	Layout string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s must be in the format %s, got %q", e.Field, e.Layout, e.Value)
}

// IsFormatError проверяет, является ли ошибка ошибкой формата
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
