package service

import (
	"errors"
	"fmt"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across services. Struct errors below carry the data
// a caller needs to report the failure; match them with errors.As.
var (
	// ErrNoEncontrado: the referenced row does not exist or is soft-deleted.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrRangoInvalido: desde > hasta on a discount range write.
	ErrRangoInvalido = errors.New("rango invalido: desde debe ser menor o igual que hasta")

	// ErrRangoDuplicado: exact (categoria, desde, hasta) triple already exists.
	ErrRangoDuplicado = errors.New("ya existe un rango identico para la categoria")

	// ErrEstadoRecepcion: requested transition is not valid for the current estado.
	ErrEstadoRecepcion = errors.New("estado de recepcion no admite la operacion")
)

// ErrRangoSolapado rejects a range write that intersects an existing active
// range of the same category. Conflicto is the first intersecting range found.
type ErrRangoSolapado struct {
	Conflicto model.RangoDescuento
}

func (e *ErrRangoSolapado) Error() string {
	return fmt.Sprintf("el rango se solapa con [%s, %s] de la categoria %d",
		e.Conflicto.Desde, e.Conflicto.Hasta, e.Conflicto.CodigoCategoria)
}

// ErrSinRangoDescuento: no active range of the category contains the value.
// The caller decides between default-to-zero and aborting.
type ErrSinRangoDescuento struct {
	CodigoCategoria int
	Valor           decimal.Decimal
}

func (e *ErrSinRangoDescuento) Error() string {
	return fmt.Sprintf("sin rango de descuento para la categoria %d y el valor %s",
		e.CodigoCategoria, e.Valor)
}

// ErrViolacionIntegridad: more than one active range of a category contains
// the same value. The no-overlap invariant is broken in stored data; the
// calculation must abort, never silently pick one.
type ErrViolacionIntegridad struct {
	CodigoCategoria int
	Valor           decimal.Decimal
	Coincidencias   int
}

func (e *ErrViolacionIntegridad) Error() string {
	return fmt.Sprintf("violacion de integridad: %d rangos de la categoria %d contienen el valor %s",
		e.Coincidencias, e.CodigoCategoria, e.Valor)
}

// ErrPlantillaIncompleta: the plantilla lacks configuration for a field the
// reception reports as measured.
type ErrPlantillaIncompleta struct {
	Campo model.Campo
}

func (e *ErrPlantillaIncompleta) Error() string {
	return fmt.Sprintf("la plantilla no configura el parametro %q", e.Campo)
}

// ErrDescuentoNoConfigurado: an out-of-tolerance measurement has no discount
// range to resolve against. Wraps the underlying ErrSinRangoDescuento.
type ErrDescuentoNoConfigurado struct {
	Campo model.Campo
	Valor decimal.Decimal
	Causa error
}

func (e *ErrDescuentoNoConfigurado) Error() string {
	return fmt.Sprintf("descuento no configurado para %q con valor %s", e.Campo, e.Valor)
}

func (e *ErrDescuentoNoConfigurado) Unwrap() error { return e.Causa }

// ErrDetalleInvalido rejects a transaction whose detail payload does not
// match its type tag.
type ErrDetalleInvalido struct {
	Motivo string
}

func (e *ErrDetalleInvalido) Error() string {
	return "detalle de transaccion invalido: " + e.Motivo
}
