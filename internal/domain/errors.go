package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Variantes con contexto. errors.Is contra el sentinel general sigue funcionando.
var (
	ErrItemNotFound                  = fmt.Errorf("%w: ítem", ErrNotFound)
	ErrCategoryNotFound              = fmt.Errorf("%w: categoría", ErrNotFound)
	ErrInvalidQuantity               = fmt.Errorf("%w: la cantidad debe ser un entero positivo", ErrInvalidInput)
	ErrQuantityOutOfRange            = fmt.Errorf("%w: la existencia resultante queda fuera del rango admitido", ErrInvalidInput)
	ErrInvalidMovementType           = fmt.Errorf("%w: tipo de movimiento desconocido", ErrInvalidInput)
	ErrInsufficientStockDuringImport = fmt.Errorf("%w durante la importación", ErrInsufficientStock)
)

// InsufficientStockError detalla una salida (OUT) rechazada por falta de stock.
// Row > 0 indica que la salida provenía de una importación masiva (fila 1-based de datos).
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
	Row       int
}

func (e *InsufficientStockError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("fila %d: stock insuficiente para %q: solicitado %d, disponible %d",
			e.Row, e.ItemName, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.ItemName, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock) y, en importaciones,
// errors.Is(err, ErrInsufficientStockDuringImport).
func (e *InsufficientStockError) Unwrap() error {
	if e.Row > 0 {
		return ErrInsufficientStockDuringImport
	}
	return ErrInsufficientStock
}
