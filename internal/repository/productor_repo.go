package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductorRepository interface {
	Create(ctx context.Context, p *model.Productor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Productor, error)
	FindByRut(ctx context.Context, rut string) (*model.Productor, error)
	List(ctx context.Context, busqueda string, page, limit int) ([]model.Productor, int64, error)
	Update(ctx context.Context, p *model.Productor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type productorRepo struct{ db *gorm.DB }

func NewProductorRepository(db *gorm.DB) ProductorRepository { return &productorRepo{db: db} }

func (r *productorRepo) Create(ctx context.Context, p *model.Productor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Productor, error) {
	var p model.Productor
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productorRepo) FindByRut(ctx context.Context, rut string) (*model.Productor, error) {
	var p model.Productor
	err := r.db.WithContext(ctx).Where("rut = ?", rut).First(&p).Error
	return &p, err
}

func (r *productorRepo) List(ctx context.Context, busqueda string, page, limit int) ([]model.Productor, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Productor{})
	if busqueda != "" {
		q = q.Where("razon_social ILIKE ? OR rut ILIKE ?", "%"+busqueda+"%", "%"+busqueda+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productores []model.Productor
	err := q.Order("razon_social ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&productores).Error
	return productores, total, err
}

func (r *productorRepo) Update(ctx context.Context, p *model.Productor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Productor{}, id).Error
}
