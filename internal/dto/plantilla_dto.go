package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ParametroCampoRequest configures one analysis field inside a template.
// Tolerancia must be present whenever the field is available; a nil value
// is rejected at settlement time for any field with a positive measurement.
type ParametroCampoRequest struct {
	Disponible        bool             `json:"disponible"`
	Porcentaje        decimal.Decimal  `json:"porcentaje"         validate:"min=0"`
	Tolerancia        *decimal.Decimal `json:"tolerancia"`
	MostrarTolerancia bool             `json:"mostrar_tolerancia"`
	ToleranciaGrupo   bool             `json:"tolerancia_grupo"`
}

type BonificacionRequest struct {
	Disponible bool            `json:"disponible"`
	Tolerancia decimal.Decimal `json:"tolerancia" validate:"min=0"`
}

type SecadoRequest struct {
	Disponible bool            `json:"disponible"`
	Porcentaje decimal.Decimal `json:"porcentaje" validate:"min=0"`
}

type CrearPlantillaRequest struct {
	Nombre             string                           `json:"nombre"               validate:"required,min=2,max=100"`
	UsaToleranciaGrupo bool                             `json:"usa_tolerancia_grupo"`
	ToleranciaGrupo    decimal.Decimal                  `json:"tolerancia_grupo"     validate:"min=0"`
	Parametros         map[string]ParametroCampoRequest `json:"parametros"           validate:"required"`
	Bonificacion       BonificacionRequest              `json:"bonificacion"`
	Secado             SecadoRequest                    `json:"secado"`
	Predeterminada     bool                             `json:"predeterminada"`
	ProductorID        string                           `json:"productor_id"         validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ParametroCampoResponse struct {
	Disponible        bool             `json:"disponible"`
	Porcentaje        decimal.Decimal  `json:"porcentaje"`
	Tolerancia        *decimal.Decimal `json:"tolerancia"`
	MostrarTolerancia bool             `json:"mostrar_tolerancia"`
	ToleranciaGrupo   bool             `json:"tolerancia_grupo"`
}

type PlantillaResponse struct {
	ID                 string                            `json:"id"`
	Nombre             string                            `json:"nombre"`
	UsaToleranciaGrupo bool                              `json:"usa_tolerancia_grupo"`
	ToleranciaGrupo    decimal.Decimal                   `json:"tolerancia_grupo"`
	Parametros         map[string]ParametroCampoResponse `json:"parametros"`
	Bonificacion       BonificacionRequest               `json:"bonificacion"`
	Secado             SecadoRequest                     `json:"secado"`
	Predeterminada     bool                              `json:"predeterminada"`
	ProductorID        *string                           `json:"productor_id"`
}
