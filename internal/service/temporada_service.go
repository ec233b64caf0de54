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

type TemporadaService interface {
	Crear(ctx context.Context, req dto.CrearTemporadaRequest) (*model.Temporada, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Temporada, error)
	ObtenerActiva(ctx context.Context) (*model.Temporada, error)
	Listar(ctx context.Context) ([]model.Temporada, error)
	Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarTemporadaRequest) (*model.Temporada, error)
}

type temporadaService struct {
	repo repository.TemporadaRepository
}

func NewTemporadaService(repo repository.TemporadaRepository) TemporadaService {
	return &temporadaService{repo: repo}
}

func (s *temporadaService) Crear(ctx context.Context, req dto.CrearTemporadaRequest) (*model.Temporada, error) {
	t := &model.Temporada{
		Nombre: req.Nombre,
		Inicio: req.Inicio,
		Activa: true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *temporadaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Temporada, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

func (s *temporadaService) ObtenerActiva(ctx context.Context) (*model.Temporada, error) {
	t, err := s.repo.FindActiva(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

func (s *temporadaService) Listar(ctx context.Context) ([]model.Temporada, error) {
	return s.repo.List(ctx)
}

func (s *temporadaService) Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarTemporadaRequest) (*model.Temporada, error) {
	t, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	fin := req.Fin
	t.Fin = &fin
	t.Activa = false
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
