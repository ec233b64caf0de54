package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductorService interface {
	Crear(ctx context.Context, req dto.CrearProductorRequest) (*model.Productor, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Productor, error)
	Listar(ctx context.Context, busqueda string, page, limit int) ([]model.Productor, int64, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductorRequest) (*model.Productor, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productorService struct {
	repo repository.ProductorRepository
}

func NewProductorService(repo repository.ProductorRepository) ProductorService {
	return &productorService{repo: repo}
}

func (s *productorService) Crear(ctx context.Context, req dto.CrearProductorRequest) (*model.Productor, error) {
	if existente, err := s.repo.FindByRut(ctx, req.Rut); err == nil && existente != nil {
		return nil, fmt.Errorf("ya existe un productor con rut %s", req.Rut)
	}

	p := &model.Productor{
		Rut:         req.Rut,
		RazonSocial: req.RazonSocial,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		BancoDatos:  req.BancoDatos,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Productor, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (s *productorService) Listar(ctx context.Context, busqueda string, page, limit int) ([]model.Productor, int64, error) {
	return s.repo.List(ctx, busqueda, page, limit)
}

func (s *productorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductorRequest) (*model.Productor, error) {
	p, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RazonSocial != nil {
		p.RazonSocial = *req.RazonSocial
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.BancoDatos != nil {
		p.BancoDatos = req.BancoDatos
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ObtenerPorID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
