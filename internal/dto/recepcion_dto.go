package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRecepcionRequest struct {
	ProductorID string `json:"productor_id" validate:"required,uuid"`
	TipoArrozID string `json:"tipo_arroz_id" validate:"required,uuid"`
	// PlantillaID selects the settlement template; empty uses the default one.
	PlantillaID string          `json:"plantilla_id" validate:"omitempty,uuid"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	PesoBruto   decimal.Decimal `json:"peso_bruto"   validate:"required,gt=0"`
	Tara        decimal.Decimal `json:"tara"         validate:"min=0"`
	// Mediciones maps analysis field name (humedad, granosVerdes, impurezas,
	// granosManchados, hualcacho, granosPelados, granosYesosos, vano) to the
	// measured percentage. Unknown names are rejected.
	Mediciones map[string]decimal.Decimal `json:"mediciones"`
	Nota       *string                    `json:"nota"`
}

type RecepcionFilter struct {
	ProductorID string     `form:"productor_id" validate:"omitempty,uuid"`
	TipoArrozID string     `form:"tipo_arroz_id" validate:"omitempty,uuid"`
	Estado      string     `form:"estado"        validate:"omitempty,oneof=pendiente liquidada anulada"`
	Desde       *time.Time `form:"desde"`
	Hasta       *time.Time `form:"hasta"`
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedicionResponse struct {
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Tolerancia decimal.Decimal `json:"tolerancia"`
}

type ResultadoCampoResponse struct {
	Campo       string          `json:"campo"`
	Medido      decimal.Decimal `json:"medido"`
	Tolerancia  decimal.Decimal `json:"tolerancia"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	DescuentoKg decimal.Decimal `json:"descuento_kg"`
}

type LiquidacionResponse struct {
	RecepcionID    string                   `json:"recepcion_id"`
	Detalle        []ResultadoCampoResponse `json:"detalle"`
	SecadoKg       decimal.Decimal          `json:"secado_kg"`
	DescuentoTotal decimal.Decimal          `json:"descuento_total"`
	Bonificacion   decimal.Decimal          `json:"bonificacion"`
	PaddyNeto      decimal.Decimal          `json:"paddy_neto"`
}
