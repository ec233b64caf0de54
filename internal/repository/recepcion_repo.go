package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecepcionRepository interface {
	Create(ctx context.Context, r *model.Recepcion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recepcion, error)
	List(ctx context.Context, filter dto.RecepcionFilter) ([]model.Recepcion, int64, error)
	Update(ctx context.Context, r *model.Recepcion) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Used inside the settlement transaction — callers must pass the tx instance.
	SaveTx(tx *gorm.DB, r *model.Recepcion) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type recepcionRepo struct{ db *gorm.DB }

func NewRecepcionRepository(db *gorm.DB) RecepcionRepository { return &recepcionRepo{db: db} }

func (r *recepcionRepo) Create(ctx context.Context, rec *model.Recepcion) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recepcionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recepcion, error) {
	var rec model.Recepcion
	err := r.db.WithContext(ctx).
		Preload("Productor").
		Preload("TipoArroz").
		First(&rec, id).Error
	return &rec, err
}

func (r *recepcionRepo) List(ctx context.Context, filter dto.RecepcionFilter) ([]model.Recepcion, int64, error) {
	var recepciones []model.Recepcion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Recepcion{})

	if filter.ProductorID != "" {
		q = q.Where("productor_id = ?", filter.ProductorID)
	}
	if filter.TipoArrozID != "" {
		q = q.Where("tipo_arroz_id = ?", filter.TipoArrozID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at <= ?", *filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Preload("Productor").
		Preload("TipoArroz").
		Find(&recepciones).Error
	return recepciones, total, err
}

func (r *recepcionRepo) Update(ctx context.Context, rec *model.Recepcion) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recepcionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Recepcion{}, id).Error
}

func (r *recepcionRepo) SaveTx(tx *gorm.DB, rec *model.Recepcion) error {
	return tx.Save(rec).Error
}

func (r *recepcionRepo) DB() *gorm.DB { return r.db }
