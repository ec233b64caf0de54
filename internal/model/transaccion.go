package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tipos de transacción del libro del productor.
const (
	TransaccionAnticipo    = "ANTICIPO"
	TransaccionLiquidacion = "LIQUIDACION"
	TransaccionSecado      = "SECADO"
	TransaccionInteres     = "INTERES"
	TransaccionNotaCredito = "NOTA_CREDITO"
	TransaccionNotaDebito  = "NOTA_DEBITO"
	TransaccionDescuento   = "DESCUENTO"
	TransaccionPago        = "PAGO"
)

// TiposTransaccion lists every valid type tag.
var TiposTransaccion = []string{
	TransaccionAnticipo,
	TransaccionLiquidacion,
	TransaccionSecado,
	TransaccionInteres,
	TransaccionNotaCredito,
	TransaccionNotaDebito,
	TransaccionDescuento,
	TransaccionPago,
}

// ConfigInteres configures simple daily interest on an advance.
type ConfigInteres struct {
	TasaDiaria  decimal.Decimal  `json:"tasa_diaria"`
	FechaInicio time.Time        `json:"fecha_inicio"`
	FechaFin    *time.Time       `json:"fecha_fin,omitempty"`
	MontoMinimo *decimal.Decimal `json:"monto_minimo,omitempty"`
	MontoMaximo *decimal.Decimal `json:"monto_maximo,omitempty"`
}

// DetalleAnticipo carries advance-specific data.
// TasaAnticipo, when present, is the advanced fraction of the expected
// settlement and must fall in [0, 1].
type DetalleAnticipo struct {
	TasaAnticipo *decimal.Decimal `json:"tasa_anticipo,omitempty"`
	Interes      *ConfigInteres   `json:"interes,omitempty"`
}

// DetallePago carries payment-specific data.
type DetallePago struct {
	Medio      string  `json:"medio"`
	Referencia *string `json:"referencia,omitempty"`
}

// DetalleDescuento carries discount-note data.
type DetalleDescuento struct {
	Motivo      string     `json:"motivo"`
	RecepcionID *uuid.UUID `json:"recepcion_id,omitempty"`
}

// DetalleLiquidacion carries settlement data: the receptions it settles.
type DetalleLiquidacion struct {
	RecepcionIDs []uuid.UUID `json:"recepcion_ids"`
}

// DetalleTransaccion is the tagged union of per-type payloads. Exactly the
// variant matching Transaccion.Tipo is populated; the rest stay nil. Stored
// as a JSON column, validated exhaustively before any row is created.
type DetalleTransaccion struct {
	Anticipo    *DetalleAnticipo    `json:"anticipo,omitempty"`
	Pago        *DetallePago        `json:"pago,omitempty"`
	Descuento   *DetalleDescuento   `json:"descuento,omitempty"`
	Liquidacion *DetalleLiquidacion `json:"liquidacion,omitempty"`
}

// Transaccion is one signed monetary movement in a producer's ledger.
// Rows are immutable after creation; corrections happen through inverse
// entries (notas de crédito/débito), never through updates.
type Transaccion struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo        string     `gorm:"type:varchar(20);not null;index"`
	ProductorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UsuarioID   uuid.UUID  `gorm:"type:uuid;not null"`
	TemporadaID *uuid.UUID `gorm:"type:uuid;index"`

	Monto decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Fecha time.Time       `gorm:"not null"`

	Detalles DetalleTransaccion `gorm:"serializer:json"`
	Notas    *string            `gorm:"type:text"`
	Metadata datatypes.JSON

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Productor *Productor `gorm:"foreignKey:ProductorID"`
	Usuario   *Usuario   `gorm:"foreignKey:UsuarioID"`
	Temporada *Temporada `gorm:"foreignKey:TemporadaID"`
}

// TableName overrides GORM's default pluralization (transaccions → transacciones).
func (Transaccion) TableName() string { return "transacciones" }

// TransaccionReferencia is a directed edge in the transaction dependency
// graph: PadreID originates, HijaID derives (e.g. an ANTICIPO parent and the
// PAGO that funded it). Append-only; the (codigo, productor, padre, hija)
// tuple is unique so retried creations collapse to a single row.
type TransaccionReferencia struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_referencia_unica"`
	ProductorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_referencia_unica;index"`
	PadreID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_referencia_unica;index"`
	HijaID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_referencia_unica;index"`
	TipoPadre   string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (TransaccionReferencia) TableName() string { return "transaccion_referencias" }
