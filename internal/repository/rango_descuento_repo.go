package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RangoDescuentoRepository defines the data access contract for discount
// ranges. Soft-deleted rows are excluded from every query by GORM's
// DeletedAt predicate, so "active" never needs spelling out per call site.
type RangoDescuentoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.RangoDescuento, error)
	// ListByCategoria returns the active ranges of a category ordered by desde ASC.
	ListByCategoria(ctx context.Context, codigoCategoria int) ([]model.RangoDescuento, error)
	// FindContenedores returns every active range of the category containing
	// valor (bounds inclusive). More than one result is a data-integrity fault
	// the caller must surface.
	FindContenedores(ctx context.Context, codigoCategoria int, valor decimal.Decimal) ([]model.RangoDescuento, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Tx variants run inside the serializable transaction that wraps the
	// overlap check and the write. Callers must pass the tx instance.
	FindSolapadosTx(tx *gorm.DB, codigoCategoria int, desde, hasta decimal.Decimal, excluirID *uuid.UUID) ([]model.RangoDescuento, error)
	CreateTx(tx *gorm.DB, r *model.RangoDescuento) error
	SaveTx(tx *gorm.DB, r *model.RangoDescuento) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type rangoDescuentoRepo struct{ db *gorm.DB }

func NewRangoDescuentoRepository(db *gorm.DB) RangoDescuentoRepository {
	return &rangoDescuentoRepo{db: db}
}

func (r *rangoDescuentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RangoDescuento, error) {
	var rango model.RangoDescuento
	err := r.db.WithContext(ctx).First(&rango, id).Error
	return &rango, err
}

func (r *rangoDescuentoRepo) ListByCategoria(ctx context.Context, codigoCategoria int) ([]model.RangoDescuento, error) {
	var rangos []model.RangoDescuento
	err := r.db.WithContext(ctx).
		Where("codigo_categoria = ?", codigoCategoria).
		Order("desde ASC").
		Find(&rangos).Error
	return rangos, err
}

func (r *rangoDescuentoRepo) FindContenedores(ctx context.Context, codigoCategoria int, valor decimal.Decimal) ([]model.RangoDescuento, error) {
	var rangos []model.RangoDescuento
	err := r.db.WithContext(ctx).
		Where("codigo_categoria = ? AND desde <= ? AND hasta >= ?", codigoCategoria, valor, valor).
		Find(&rangos).Error
	return rangos, err
}

func (r *rangoDescuentoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RangoDescuento{}, id).Error
}

func (r *rangoDescuentoRepo) FindSolapadosTx(tx *gorm.DB, codigoCategoria int, desde, hasta decimal.Decimal, excluirID *uuid.UUID) ([]model.RangoDescuento, error) {
	// Standard interval-overlap test: existing.desde <= hasta AND existing.hasta >= desde.
	q := tx.Where("codigo_categoria = ? AND desde <= ? AND hasta >= ?", codigoCategoria, hasta, desde)
	if excluirID != nil {
		q = q.Where("id <> ?", *excluirID)
	}
	var rangos []model.RangoDescuento
	err := q.Find(&rangos).Error
	return rangos, err
}

func (r *rangoDescuentoRepo) CreateTx(tx *gorm.DB, rango *model.RangoDescuento) error {
	return tx.Create(rango).Error
}

func (r *rangoDescuentoRepo) SaveTx(tx *gorm.DB, rango *model.RangoDescuento) error {
	return tx.Save(rango).Error
}

func (r *rangoDescuentoRepo) DB() *gorm.DB { return r.db }
