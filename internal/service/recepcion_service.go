package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecepcionService interface {
	Crear(ctx context.Context, req dto.CrearRecepcionRequest) (*model.Recepcion, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Recepcion, error)
	Listar(ctx context.Context, filter dto.RecepcionFilter) ([]model.Recepcion, int64, error)
	// Recalcular runs the settlement calculation and persists the derived
	// totals without changing estado. Only valid while pendiente.
	Recalcular(ctx context.Context, id uuid.UUID) (*model.Recepcion, *ResultadoLiquidacion, error)
	// Liquidar settles the reception: computes totals, transitions to
	// liquidada, and records the LIQUIDACION ledger entry.
	Liquidar(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) (*model.Recepcion, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) error
}

type recepcionService struct {
	repo          repository.RecepcionRepository
	plantillaRepo repository.PlantillaRepository
	productorRepo repository.ProductorRepository
	tipoRepo      repository.TipoArrozRepository
	liquidacion   LiquidacionService
	transacciones TransaccionService
}

func NewRecepcionService(
	repo repository.RecepcionRepository,
	plantillaRepo repository.PlantillaRepository,
	productorRepo repository.ProductorRepository,
	tipoRepo repository.TipoArrozRepository,
	liquidacion LiquidacionService,
	transacciones TransaccionService,
) RecepcionService {
	return &recepcionService{
		repo:          repo,
		plantillaRepo: plantillaRepo,
		productorRepo: productorRepo,
		tipoRepo:      tipoRepo,
		liquidacion:   liquidacion,
		transacciones: transacciones,
	}
}

// ── Crear ────────────────────────────────────────────────────────────────────

func (s *recepcionService) Crear(ctx context.Context, req dto.CrearRecepcionRequest) (*model.Recepcion, error) {
	productorID, err := uuid.Parse(req.ProductorID)
	if err != nil {
		return nil, fmt.Errorf("productor_id inválido: %w", err)
	}
	if _, err := s.productorRepo.FindByID(ctx, productorID); err != nil {
		return nil, ErrNoEncontrado
	}

	tipoArrozID, err := uuid.Parse(req.TipoArrozID)
	if err != nil {
		return nil, fmt.Errorf("tipo_arroz_id inválido: %w", err)
	}
	tipo, err := s.tipoRepo.FindByID(ctx, tipoArrozID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if !tipo.Habilitado {
		return nil, fmt.Errorf("el tipo de arroz %q está deshabilitado", tipo.Nombre)
	}

	// Sin plantilla explícita se usa la predeterminada.
	var plantilla *model.Plantilla
	if req.PlantillaID != "" {
		pid, err := uuid.Parse(req.PlantillaID)
		if err != nil {
			return nil, fmt.Errorf("plantilla_id inválido: %w", err)
		}
		if plantilla, err = s.plantillaRepo.FindByID(ctx, pid); err != nil {
			return nil, ErrNoEncontrado
		}
	} else {
		if plantilla, err = s.plantillaRepo.FindPredeterminada(ctx); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			plantilla = nil
		}
	}

	pesoNeto := req.PesoBruto.Sub(req.Tara)
	if pesoNeto.IsNegative() {
		return nil, errors.New("la tara no puede superar el peso bruto")
	}

	precio := req.Precio
	if precio.IsZero() {
		precio = tipo.Precio
	}

	rec := &model.Recepcion{
		ProductorID: productorID,
		TipoArrozID: tipoArrozID,
		Precio:      precio,
		PesoBruto:   req.PesoBruto,
		Tara:        req.Tara,
		PesoNeto:    pesoNeto,
		Estado:      model.RecepcionPendiente,
		Nota:        req.Nota,
	}

	// Snapshot each measurement with the tolerance active at reception time.
	// Keys outside the fixed field set are rejected; SetMedicion would drop
	// them silently and the field would settle with zero discount.
	for campo, medido := range req.Mediciones {
		c := model.Campo(campo)
		if _, ok := model.CodigoCategoria(c); !ok {
			return nil, fmt.Errorf("medición desconocida: %q", campo)
		}
		m := model.MedicionCampo{Porcentaje: medido}
		if plantilla != nil {
			if param, ok := plantilla.Parametro(c); ok && param.Tolerancia != nil {
				m.Tolerancia = *param.Tolerancia
			}
		}
		rec.SetMedicion(c, m)
	}
	if plantilla != nil {
		rec.PlantillaID = &plantilla.ID
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *recepcionService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Recepcion, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return rec, nil
}

func (s *recepcionService) Listar(ctx context.Context, filter dto.RecepcionFilter) ([]model.Recepcion, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// ── Recalcular / Liquidar / Anular ───────────────────────────────────────────

func (s *recepcionService) Recalcular(ctx context.Context, id uuid.UUID) (*model.Recepcion, *ResultadoLiquidacion, error) {
	rec, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rec.Estado != model.RecepcionPendiente {
		return nil, nil, ErrEstadoRecepcion
	}

	resultado, err := s.calcular(ctx, rec)
	if err != nil {
		// Calculation failed: the reception keeps estado=pendiente and no
		// derived field is written.
		return nil, nil, err
	}

	rec.DescuentoTotal = resultado.DescuentoTotal
	rec.Bonificacion = resultado.Bonificacion
	rec.PaddyNeto = resultado.PaddyNeto
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, nil, err
	}
	return rec, resultado, nil
}

func (s *recepcionService) Liquidar(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID) (*model.Recepcion, error) {
	rec, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Estado != model.RecepcionPendiente {
		return nil, ErrEstadoRecepcion
	}

	resultado, err := s.calcular(ctx, rec)
	if err != nil {
		return nil, err
	}

	rec.DescuentoTotal = resultado.DescuentoTotal
	rec.Bonificacion = resultado.Bonificacion
	rec.PaddyNeto = resultado.PaddyNeto
	rec.Estado = model.RecepcionLiquidada
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	// Monto liquidado = paddy neto × precio por kg.
	monto := resultado.PaddyNeto.Mul(rec.Precio).Round(2)
	if _, err := s.transacciones.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionLiquidacion,
		ProductorID: rec.ProductorID.String(),
		Monto:       monto,
		Fecha:       timePtr(time.Now()),
		Detalles: model.DetalleTransaccion{
			Liquidacion: &model.DetalleLiquidacion{RecepcionIDs: []uuid.UUID{rec.ID}},
		},
	}); err != nil {
		// The reception is already settled; the ledger entry is retryable by
		// an operator, mirroring the composite-operation failure model.
		return rec, fmt.Errorf("recepcion liquidada pero transaccion no registrada: %w", err)
	}
	return rec, nil
}

func (s *recepcionService) Anular(ctx context.Context, id uuid.UUID, motivo string) error {
	rec, err := s.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Estado != model.RecepcionPendiente {
		return ErrEstadoRecepcion
	}
	rec.Estado = model.RecepcionAnulada
	if motivo != "" {
		rec.Nota = &motivo
	}
	return s.repo.Update(ctx, rec)
}

func (s *recepcionService) calcular(ctx context.Context, rec *model.Recepcion) (*ResultadoLiquidacion, error) {
	if rec.PlantillaID == nil {
		return nil, errors.New("la recepcion no tiene plantilla asignada")
	}
	plantilla, err := s.plantillaRepo.FindByID(ctx, *rec.PlantillaID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return s.liquidacion.Calcular(ctx, rec, plantilla)
}

func timePtr(t time.Time) *time.Time { return &t }
