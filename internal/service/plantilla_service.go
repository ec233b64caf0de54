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

type PlantillaService interface {
	Crear(ctx context.Context, req dto.CrearPlantillaRequest) (*model.Plantilla, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Plantilla, error)
	Predeterminada(ctx context.Context) (*model.Plantilla, error)
	Listar(ctx context.Context) ([]model.Plantilla, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearPlantillaRequest) (*model.Plantilla, error)
	SetPredeterminada(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type plantillaService struct {
	repo repository.PlantillaRepository
}

func NewPlantillaService(repo repository.PlantillaRepository) PlantillaService {
	return &plantillaService{repo: repo}
}

func (s *plantillaService) Crear(ctx context.Context, req dto.CrearPlantillaRequest) (*model.Plantilla, error) {
	if existente, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil && existente != nil {
		return nil, fmt.Errorf("ya existe una plantilla con el nombre %q", req.Nombre)
	}

	p := plantillaDesdeRequest(req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// The swap below keeps the single-default invariant even when the new
	// plantilla is created as default directly.
	if req.Predeterminada {
		if err := s.repo.SetPredeterminada(ctx, p.ID); err != nil {
			return nil, err
		}
		p.Predeterminada = true
	}
	return p, nil
}

func (s *plantillaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Plantilla, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (s *plantillaService) Predeterminada(ctx context.Context) (*model.Plantilla, error) {
	p, err := s.repo.FindPredeterminada(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return p, nil
}

func (s *plantillaService) Listar(ctx context.Context) ([]model.Plantilla, error) {
	return s.repo.List(ctx)
}

func (s *plantillaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearPlantillaRequest) (*model.Plantilla, error) {
	p, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if otro, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil && otro != nil && otro.ID != id {
		return nil, fmt.Errorf("ya existe una plantilla con el nombre %q", req.Nombre)
	}

	nuevo := plantillaDesdeRequest(req)
	nuevo.ID = p.ID
	nuevo.Predeterminada = p.Predeterminada
	nuevo.CreatedAt = p.CreatedAt
	if err := s.repo.Update(ctx, nuevo); err != nil {
		return nil, err
	}
	return nuevo, nil
}

// SetPredeterminada swaps the global default. The repository runs the clear
// and the set in one transaction; on success exactly one plantilla is default.
func (s *plantillaService) SetPredeterminada(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ObtenerPorID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetPredeterminada(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	return nil
}

func (s *plantillaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if p.Predeterminada {
		return errors.New("no se puede eliminar la plantilla predeterminada")
	}
	return s.repo.SoftDelete(ctx, id)
}

func plantillaDesdeRequest(req dto.CrearPlantillaRequest) *model.Plantilla {
	p := &model.Plantilla{
		Nombre:                 req.Nombre,
		UsaToleranciaGrupo:     req.UsaToleranciaGrupo,
		ToleranciaGrupo:        req.ToleranciaGrupo,
		BonificacionDisponible: req.Bonificacion.Disponible,
		BonificacionTolerancia: req.Bonificacion.Tolerancia,
		SecadoDisponible:       req.Secado.Disponible,
		SecadoPorcentaje:       req.Secado.Porcentaje,
	}
	if req.ProductorID != "" {
		if pid, err := uuid.Parse(req.ProductorID); err == nil {
			p.ProductorID = &pid
		}
	}
	for campo, cfg := range req.Parametros {
		p.SetParametro(model.Campo(campo), model.ParametroCampo{
			Disponible:        cfg.Disponible,
			Porcentaje:        cfg.Porcentaje,
			Tolerancia:        cfg.Tolerancia,
			MostrarTolerancia: cfg.MostrarTolerancia,
			ToleranciaGrupo:   cfg.ToleranciaGrupo,
		})
	}
	return p
}
