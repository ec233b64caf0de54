package dto

import (
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTransaccionRequest struct {
	Tipo        string                   `json:"tipo"         validate:"required,oneof=ANTICIPO LIQUIDACION SECADO INTERES NOTA_CREDITO NOTA_DEBITO DESCUENTO PAGO"`
	ProductorID string                   `json:"productor_id" validate:"required,uuid"`
	TemporadaID string                   `json:"temporada_id" validate:"omitempty,uuid"`
	Monto       decimal.Decimal          `json:"monto"        validate:"required,gt=0"`
	Fecha       *time.Time               `json:"fecha"`
	Detalles    model.DetalleTransaccion `json:"detalles"`
	Notas       *string                  `json:"notas"`
	Metadata    datatypes.JSON           `json:"metadata"`
}

type CrearReferenciaRequest struct {
	Codigo      string `json:"codigo"       validate:"required,min=2,max=50"`
	ProductorID string `json:"productor_id" validate:"required,uuid"`
	PadreID     string `json:"padre_id"     validate:"required,uuid"`
	HijaID      string `json:"hija_id"      validate:"required,uuid"`
}

type AnticipoConPagoRequest struct {
	ProductorID string                `json:"productor_id" validate:"required,uuid"`
	TemporadaID string                `json:"temporada_id" validate:"omitempty,uuid"`
	Monto       decimal.Decimal       `json:"monto"        validate:"required,gt=0"`
	Fecha       *time.Time            `json:"fecha"`
	Anticipo    model.DetalleAnticipo `json:"anticipo"`
	Pago        model.DetallePago     `json:"pago"         validate:"required"`
	Notas       *string               `json:"notas"`
}

type TransaccionFilter struct {
	ProductorID string `form:"productor_id" validate:"omitempty,uuid"`
	Tipo        string `form:"tipo"         validate:"omitempty"`
	TemporadaID string `form:"temporada_id" validate:"omitempty,uuid"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InteresResponse struct {
	TransaccionID string          `json:"transaccion_id"`
	Monto         decimal.Decimal `json:"monto"`
}
