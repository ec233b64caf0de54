package repository

import (
	"context"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlantillaRepository interface {
	Create(ctx context.Context, p *model.Plantilla) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plantilla, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Plantilla, error)
	FindPredeterminada(ctx context.Context) (*model.Plantilla, error)
	List(ctx context.Context) ([]model.Plantilla, error)
	Update(ctx context.Context, p *model.Plantilla) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// SetPredeterminada clears every default flag and sets the new one inside
	// a single transaction; the partial unique index on plantillas backs it
	// against racing callers.
	SetPredeterminada(ctx context.Context, id uuid.UUID) error
}

type plantillaRepo struct{ db *gorm.DB }

func NewPlantillaRepository(db *gorm.DB) PlantillaRepository { return &plantillaRepo{db: db} }

func (r *plantillaRepo) Create(ctx context.Context, p *model.Plantilla) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plantilla, error) {
	var p model.Plantilla
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *plantillaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Plantilla, error) {
	var p model.Plantilla
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&p).Error
	return &p, err
}

func (r *plantillaRepo) FindPredeterminada(ctx context.Context) (*model.Plantilla, error) {
	var p model.Plantilla
	err := r.db.WithContext(ctx).Where("predeterminada = true").First(&p).Error
	return &p, err
}

func (r *plantillaRepo) List(ctx context.Context) ([]model.Plantilla, error) {
	var plantillas []model.Plantilla
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&plantillas).Error
	return plantillas, err
}

func (r *plantillaRepo) Update(ctx context.Context, p *model.Plantilla) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plantillaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Plantilla{}, id).Error
}

func (r *plantillaRepo) SetPredeterminada(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Plantilla{}).
			Where("predeterminada = true").
			Update("predeterminada", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Plantilla{}).
			Where("id = ?", id).
			Update("predeterminada", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
