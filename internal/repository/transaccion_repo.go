package repository

import (
	"context"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransaccionRepository covers the producer ledger and its reference graph.
// Transactions are append-only: there is deliberately no Update method.
type TransaccionRepository interface {
	Create(ctx context.Context, t *model.Transaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)
	List(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListAnticiposConInteres returns active ANTICIPO rows whose detail
	// carries an interest config with fecha_inicio on or before corte.
	// Feeds the accrual cron.
	ListAnticiposConInteres(ctx context.Context, corte time.Time) ([]model.Transaccion, error)

	CreateReferencia(ctx context.Context, ref *model.TransaccionReferencia) error
	FindReferencia(ctx context.Context, codigo string, productorID, padreID, hijaID uuid.UUID) (*model.TransaccionReferencia, error)
	ListReferenciasPorPadre(ctx context.Context, padreID uuid.UUID) ([]model.TransaccionReferencia, error)
	ListReferenciasPorHija(ctx context.Context, hijaID uuid.UUID) ([]model.TransaccionReferencia, error)
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository { return &transaccionRepo{db: db} }

func (r *transaccionRepo) Create(ctx context.Context, t *model.Transaccion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *transaccionRepo) List(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error) {
	var transacciones []model.Transaccion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Transaccion{})

	if filter.ProductorID != "" {
		q = q.Where("productor_id = ?", filter.ProductorID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.TemporadaID != "" {
		q = q.Where("temporada_id = ?", filter.TemporadaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Preload("Productor").
		Find(&transacciones).Error
	return transacciones, total, err
}

func (r *transaccionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Transaccion{}, id).Error
}

func (r *transaccionRepo) ListAnticiposConInteres(ctx context.Context, corte time.Time) ([]model.Transaccion, error) {
	var anticipos []model.Transaccion
	err := r.db.WithContext(ctx).
		Where("tipo = ?", model.TransaccionAnticipo).
		Where("detalles -> 'anticipo' -> 'interes' IS NOT NULL").
		Where("(detalles -> 'anticipo' -> 'interes' ->> 'fecha_inicio')::timestamptz <= ?", corte).
		Find(&anticipos).Error
	return anticipos, err
}

func (r *transaccionRepo) CreateReferencia(ctx context.Context, ref *model.TransaccionReferencia) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *transaccionRepo) FindReferencia(ctx context.Context, codigo string, productorID, padreID, hijaID uuid.UUID) (*model.TransaccionReferencia, error) {
	var ref model.TransaccionReferencia
	err := r.db.WithContext(ctx).
		Where("codigo = ? AND productor_id = ? AND padre_id = ? AND hija_id = ?",
			codigo, productorID, padreID, hijaID).
		First(&ref).Error
	return &ref, err
}

func (r *transaccionRepo) ListReferenciasPorPadre(ctx context.Context, padreID uuid.UUID) ([]model.TransaccionReferencia, error) {
	var refs []model.TransaccionReferencia
	err := r.db.WithContext(ctx).
		Where("padre_id = ?", padreID).
		Order("created_at ASC").
		Find(&refs).Error
	return refs, err
}

func (r *transaccionRepo) ListReferenciasPorHija(ctx context.Context, hijaID uuid.UUID) ([]model.TransaccionReferencia, error) {
	var refs []model.TransaccionReferencia
	err := r.db.WithContext(ctx).
		Where("hija_id = ?", hijaID).
		Order("created_at ASC").
		Find(&refs).Error
	return refs, err
}
