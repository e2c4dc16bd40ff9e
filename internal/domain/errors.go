package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrParse            = errors.New("valor no numérico")
	ErrMissingColumn    = errors.New("columna obligatoria ausente")
	ErrUnknownDistrict  = errors.New("distrito desconocido")
	ErrNegativeQuantity = errors.New("cantidad negativa")
)
