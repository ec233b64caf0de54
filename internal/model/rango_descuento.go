package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RangoDescuento maps a measured-value interval [Desde, Hasta] (inclusive on
// both ends) to a discount percent for one category code. Active ranges of a
// category never overlap; resolution therefore finds at most one match.
// Deleted ranges are retained for audit and excluded from lookups.
type RangoDescuento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoCategoria int             `gorm:"not null;index:idx_rangos_categoria"`
	Desde           decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	Hasta           decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	Porcentaje      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralization (rango_descuentos → rangos_descuento).
func (RangoDescuento) TableName() string { return "rangos_descuento" }

// Contiene reports whether valor falls inside the range, bounds included.
func (r *RangoDescuento) Contiene(valor decimal.Decimal) bool {
	return r.Desde.LessThanOrEqual(valor) && r.Hasta.GreaterThanOrEqual(valor)
}
