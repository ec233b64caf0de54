package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoArrozRepository interface {
	Create(ctx context.Context, t *model.TipoArroz) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TipoArroz, error)
	List(ctx context.Context, soloHabilitados bool) ([]model.TipoArroz, error)
	Update(ctx context.Context, t *model.TipoArroz) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type tipoArrozRepo struct{ db *gorm.DB }

func NewTipoArrozRepository(db *gorm.DB) TipoArrozRepository { return &tipoArrozRepo{db: db} }

func (r *tipoArrozRepo) Create(ctx context.Context, t *model.TipoArroz) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tipoArrozRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TipoArroz, error) {
	var t model.TipoArroz
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *tipoArrozRepo) List(ctx context.Context, soloHabilitados bool) ([]model.TipoArroz, error) {
	q := r.db.WithContext(ctx)
	if soloHabilitados {
		q = q.Where("habilitado = true")
	}
	var tipos []model.TipoArroz
	err := q.Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoArrozRepo) Update(ctx context.Context, t *model.TipoArroz) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tipoArrozRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TipoArroz{}, id).Error
}
