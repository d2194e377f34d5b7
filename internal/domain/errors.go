package domain

import "errors"

// Виды ошибок бизнес-логики. Ошибки usecase-ов оборачивают один из них,
// обработчики HTTP сопоставляют вид ошибки со статусом ответа.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPolicyViolation = errors.New("policy violation")
)
