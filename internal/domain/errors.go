package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El libro de inventario los envuelve con contexto (fmt.Errorf("%w: ...")); comparar con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrValidation        = errors.New("validación fallida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
)
