package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Productor is a rice producer the plant buys paddy from. Every reception
// and every ledger transaction belongs to exactly one producer.
type Productor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Rut         string    `gorm:"uniqueIndex;not null"`
	RazonSocial string    `gorm:"index;not null"`
	Telefono    *string
	Email       *string
	Direccion   *string
	// BancoDatos: free-text bank/payment details used on settlement documents.
	BancoDatos *string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralization (productors → productores).
func (Productor) TableName() string { return "productores" }
