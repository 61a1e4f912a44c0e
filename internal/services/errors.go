package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("registro no encontrado")
	ErrInvalidPassword     = errors.New("contraseña inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInvalidState        = errors.New("transición de estado inválida")
	ErrValidation          = errors.New("datos inválidos")
	ErrDuplicateDebt       = errors.New("ya existe una deuda para esta lectura")
	ErrDebtNotDeletable    = errors.New("la deuda tiene pagos registrados y no puede eliminarse")
	ErrMigrationAlreadyRun = errors.New("la migración ya fue aplicada")
)
