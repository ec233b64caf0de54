package service

import (
	"context"
	"errors"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoArrozService interface {
	Crear(ctx context.Context, req dto.CrearTipoArrozRequest) (*model.TipoArroz, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoArroz, error)
	Listar(ctx context.Context, soloHabilitados bool) ([]model.TipoArroz, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoArrozRequest) (*model.TipoArroz, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type tipoArrozService struct {
	repo repository.TipoArrozRepository
}

func NewTipoArrozService(repo repository.TipoArrozRepository) TipoArrozService {
	return &tipoArrozService{repo: repo}
}

func (s *tipoArrozService) Crear(ctx context.Context, req dto.CrearTipoArrozRequest) (*model.TipoArroz, error) {
	t := &model.TipoArroz{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Habilitado:  true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tipoArrozService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoArroz, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

func (s *tipoArrozService) Listar(ctx context.Context, soloHabilitados bool) ([]model.TipoArroz, error) {
	return s.repo.List(ctx, soloHabilitados)
}

func (s *tipoArrozService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoArrozRequest) (*model.TipoArroz, error) {
	t, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		t.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		t.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		t.Precio = *req.Precio
	}
	if req.Habilitado != nil {
		t.Habilitado = *req.Habilitado
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tipoArrozService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ObtenerPorID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
