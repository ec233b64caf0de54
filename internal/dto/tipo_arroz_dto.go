package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTipoArrozRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
}

type ActualizarTipoArrozRequest struct {
	Nombre      *string          `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"      validate:"omitempty"`
	Habilitado  *bool            `json:"habilitado"`
}

type CrearTemporadaRequest struct {
	Nombre string    `json:"nombre" validate:"required,min=2,max=100"`
	Inicio time.Time `json:"inicio" validate:"required"`
}

type CerrarTemporadaRequest struct {
	Fin time.Time `json:"fin" validate:"required"`
}
