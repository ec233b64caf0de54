package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de una recepción. Transitions: pendiente → liquidada | anulada.
// Both liquidada and anulada are terminal.
const (
	RecepcionPendiente = "pendiente"
	RecepcionLiquidada = "liquidada"
	RecepcionAnulada   = "anulada"
)

// MedicionCampo is one lab measurement on a reception: the measured percent
// and the tolerance snapshotted from the plantilla at reception time, so the
// printed settlement stays reproducible even if the plantilla changes later.
type MedicionCampo struct {
	Porcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Tolerancia decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

// Recepcion is one truckload weighed at the plant, with its grain analysis
// and the settlement totals derived from it. DescuentoTotal, Bonificacion and
// PaddyNeto are written only by the settlement calculation; they stay zero
// while the reception is pendiente and uncalculated.
type Recepcion struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	TipoArrozID uuid.UUID  `gorm:"type:uuid;not null"`
	PlantillaID *uuid.UUID `gorm:"type:uuid"`

	// Precio: price per kg of paddy agreed for this reception.
	Precio    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PesoBruto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tara      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PesoNeto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Humedad         MedicionCampo `gorm:"embedded;embeddedPrefix:humedad_"`
	GranosVerdes    MedicionCampo `gorm:"embedded;embeddedPrefix:granos_verdes_"`
	Impurezas       MedicionCampo `gorm:"embedded;embeddedPrefix:impurezas_"`
	GranosManchados MedicionCampo `gorm:"embedded;embeddedPrefix:granos_manchados_"`
	Hualcacho       MedicionCampo `gorm:"embedded;embeddedPrefix:hualcacho_"`
	GranosPelados   MedicionCampo `gorm:"embedded;embeddedPrefix:granos_pelados_"`
	GranosYesosos   MedicionCampo `gorm:"embedded;embeddedPrefix:granos_yesosos_"`
	Vano            MedicionCampo `gorm:"embedded;embeddedPrefix:vano_"`

	// Settlement results, in kg.
	DescuentoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Bonificacion   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaddyNeto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Estado string  `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Nota   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Productor *Productor `gorm:"foreignKey:ProductorID"`
	TipoArroz *TipoArroz `gorm:"foreignKey:TipoArrozID"`
	Plantilla *Plantilla `gorm:"foreignKey:PlantillaID"`
}

// TableName overrides GORM's default pluralization (recepcions → recepciones).
func (Recepcion) TableName() string { return "recepciones" }

// Medicion returns the lab measurement for the given analysis field.
func (r *Recepcion) Medicion(c Campo) (MedicionCampo, bool) {
	switch c {
	case CampoHumedad:
		return r.Humedad, true
	case CampoGranosVerdes:
		return r.GranosVerdes, true
	case CampoImpurezas:
		return r.Impurezas, true
	case CampoGranosManchados:
		return r.GranosManchados, true
	case CampoHualcacho:
		return r.Hualcacho, true
	case CampoGranosPelados:
		return r.GranosPelados, true
	case CampoGranosYesosos:
		return r.GranosYesosos, true
	case CampoVano:
		return r.Vano, true
	}
	return MedicionCampo{}, false
}

// SetMedicion writes the lab measurement for the given analysis field.
func (r *Recepcion) SetMedicion(c Campo, v MedicionCampo) {
	switch c {
	case CampoHumedad:
		r.Humedad = v
	case CampoGranosVerdes:
		r.GranosVerdes = v
	case CampoImpurezas:
		r.Impurezas = v
	case CampoGranosManchados:
		r.GranosManchados = v
	case CampoHualcacho:
		r.Hualcacho = v
	case CampoGranosPelados:
		r.GranosPelados = v
	case CampoGranosYesosos:
		r.GranosYesosos = v
	case CampoVano:
		r.Vano = v
	}
}
