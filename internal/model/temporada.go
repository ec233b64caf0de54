package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Temporada is a purchasing season (e.g. "Cosecha 2026"). Transactions may
// be tagged with the season they belong to for per-season reporting.
type Temporada struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Inicio    time.Time `gorm:"not null"`
	Fin       *time.Time
	Activa    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
