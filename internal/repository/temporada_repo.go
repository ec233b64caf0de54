package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemporadaRepository interface {
	Create(ctx context.Context, t *model.Temporada) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Temporada, error)
	FindActiva(ctx context.Context) (*model.Temporada, error)
	List(ctx context.Context) ([]model.Temporada, error)
	Update(ctx context.Context, t *model.Temporada) error
}

type temporadaRepo struct{ db *gorm.DB }

func NewTemporadaRepository(db *gorm.DB) TemporadaRepository { return &temporadaRepo{db: db} }

func (r *temporadaRepo) Create(ctx context.Context, t *model.Temporada) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *temporadaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Temporada, error) {
	var t model.Temporada
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *temporadaRepo) FindActiva(ctx context.Context) (*model.Temporada, error) {
	var t model.Temporada
	err := r.db.WithContext(ctx).Where("activa = true").Order("inicio DESC").First(&t).Error
	return &t, err
}

func (r *temporadaRepo) List(ctx context.Context) ([]model.Temporada, error) {
	var temporadas []model.Temporada
	err := r.db.WithContext(ctx).Order("inicio DESC").Find(&temporadas).Error
	return temporadas, err
}

func (r *temporadaRepo) Update(ctx context.Context, t *model.Temporada) error {
	return r.db.WithContext(ctx).Save(t).Error
}
