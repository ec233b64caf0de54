package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRangoRequest struct {
	CodigoCategoria int             `json:"codigo_categoria" validate:"required,min=1,max=8"`
	Desde           decimal.Decimal `json:"desde"            validate:"min=0"`
	Hasta           decimal.Decimal `json:"hasta"            validate:"min=0"`
	Porcentaje      decimal.Decimal `json:"porcentaje"`
}

type ActualizarRangoRequest struct {
	Desde      decimal.Decimal `json:"desde"      validate:"min=0"`
	Hasta      decimal.Decimal `json:"hasta"      validate:"min=0"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RangoResponse struct {
	ID              string          `json:"id"`
	CodigoCategoria int             `json:"codigo_categoria"`
	Desde           decimal.Decimal `json:"desde"`
	Hasta           decimal.Decimal `json:"hasta"`
	Porcentaje      decimal.Decimal `json:"porcentaje"`
}

type ResolverResponse struct {
	CodigoCategoria int             `json:"codigo_categoria"`
	Valor           decimal.Decimal `json:"valor"`
	Porcentaje      decimal.Decimal `json:"porcentaje"`
}
