package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParametroCampo configures how one analysis field participates in a
// settlement: whether it is charged at all, its fixed percent (informative,
// shown on the settlement document), the tolerance below which the field
// contributes nothing, and whether it joins the group-tolerance pool.
// Tolerancia is nullable: Disponible=true with a nil tolerance is a
// misconfigured plantilla and fails any settlement that measures the field.
type ParametroCampo struct {
	Disponible        bool             `gorm:"not null;default:true"`
	Porcentaje        decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	Tolerancia        *decimal.Decimal `gorm:"type:decimal(5,2)"`
	MostrarTolerancia bool             `gorm:"not null;default:true"`
	ToleranciaGrupo   bool             `gorm:"not null;default:false"`
}

// Plantilla is a named settlement configuration applied to receptions.
// At most one non-deleted plantilla is marked Predeterminada; SetPredeterminada
// on the repository enforces the swap transactionally and a partial unique
// index backs it at the storage layer.
type Plantilla struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	UsaToleranciaGrupo bool            `gorm:"not null;default:false"`
	ToleranciaGrupo    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	Humedad         ParametroCampo `gorm:"embedded;embeddedPrefix:humedad_"`
	GranosVerdes    ParametroCampo `gorm:"embedded;embeddedPrefix:granos_verdes_"`
	Impurezas       ParametroCampo `gorm:"embedded;embeddedPrefix:impurezas_"`
	GranosManchados ParametroCampo `gorm:"embedded;embeddedPrefix:granos_manchados_"`
	Hualcacho       ParametroCampo `gorm:"embedded;embeddedPrefix:hualcacho_"`
	GranosPelados   ParametroCampo `gorm:"embedded;embeddedPrefix:granos_pelados_"`
	GranosYesosos   ParametroCampo `gorm:"embedded;embeddedPrefix:granos_yesosos_"`
	Vano            ParametroCampo `gorm:"embedded;embeddedPrefix:vano_"`

	// Bonificación: extra paddy weight granted when humidity comes in at or
	// below the configured tolerance.
	BonificacionDisponible bool            `gorm:"not null;default:false"`
	BonificacionTolerancia decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	// Secado: flat drying charge, percent-only (no tolerance).
	SecadoDisponible bool            `gorm:"not null;default:false"`
	SecadoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	Predeterminada bool       `gorm:"not null;default:false"`
	ProductorID    *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Productor *Productor `gorm:"foreignKey:ProductorID"`
}

// Parametro returns the configuration for the given analysis field.
func (p *Plantilla) Parametro(c Campo) (ParametroCampo, bool) {
	switch c {
	case CampoHumedad:
		return p.Humedad, true
	case CampoGranosVerdes:
		return p.GranosVerdes, true
	case CampoImpurezas:
		return p.Impurezas, true
	case CampoGranosManchados:
		return p.GranosManchados, true
	case CampoHualcacho:
		return p.Hualcacho, true
	case CampoGranosPelados:
		return p.GranosPelados, true
	case CampoGranosYesosos:
		return p.GranosYesosos, true
	case CampoVano:
		return p.Vano, true
	}
	return ParametroCampo{}, false
}

// SetParametro writes the configuration for the given analysis field.
func (p *Plantilla) SetParametro(c Campo, v ParametroCampo) {
	switch c {
	case CampoHumedad:
		p.Humedad = v
	case CampoGranosVerdes:
		p.GranosVerdes = v
	case CampoImpurezas:
		p.Impurezas = v
	case CampoGranosManchados:
		p.GranosManchados = v
	case CampoHualcacho:
		p.Hualcacho = v
	case CampoGranosPelados:
		p.GranosPelados = v
	case CampoGranosYesosos:
		p.GranosYesosos = v
	case CampoVano:
		p.Vano = v
	}
}
