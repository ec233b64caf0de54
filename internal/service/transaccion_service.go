package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnticipoConPagoResultado bundles the rows produced by the composite
// operation. Referencia may be nil when both transactions were persisted but
// the reference write failed; see CrearAnticipoConPago.
type AnticipoConPagoResultado struct {
	Anticipo   *model.Transaccion
	Pago       *model.Transaccion
	Referencia *model.TransaccionReferencia
}

type TransaccionService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTransaccionRequest) (*model.Transaccion, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)
	Listar(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	CrearReferencia(ctx context.Context, req dto.CrearReferenciaRequest) (*model.TransaccionReferencia, error)
	ReferenciasPorPadre(ctx context.Context, padreID uuid.UUID) ([]model.TransaccionReferencia, error)
	ReferenciasPorHija(ctx context.Context, hijaID uuid.UUID) ([]model.TransaccionReferencia, error)

	CrearAnticipoConPago(ctx context.Context, usuarioID uuid.UUID, req dto.AnticipoConPagoRequest) (*AnticipoConPagoResultado, error)

	// CalcularInteresAnticipo computes simple interest accrued by an advance
	// up to fechaRef. Pure: the advance row is never mutated.
	CalcularInteresAnticipo(anticipo *model.Transaccion, fechaRef time.Time) (decimal.Decimal, error)
	// GenerarTransaccionInteres persists an INTERES transaction for the
	// accrued amount and links it to the advance. Idempotent per accrual day
	// through the reference key.
	GenerarTransaccionInteres(ctx context.Context, anticipoID uuid.UUID, fechaRef time.Time, usuarioID uuid.UUID) (*model.Transaccion, error)
}

type transaccionService struct {
	repo          repository.TransaccionRepository
	productorRepo repository.ProductorRepository
}

func NewTransaccionService(
	repo repository.TransaccionRepository,
	productorRepo repository.ProductorRepository,
) TransaccionService {
	return &transaccionService{repo: repo, productorRepo: productorRepo}
}

// ── Crear ────────────────────────────────────────────────────────────────────

func (s *transaccionService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTransaccionRequest) (*model.Transaccion, error) {
	if err := validarDetalles(req.Tipo, req.Detalles); err != nil {
		return nil, err
	}

	productorID, err := uuid.Parse(req.ProductorID)
	if err != nil {
		return nil, fmt.Errorf("productor_id inválido: %w", err)
	}
	if _, err := s.productorRepo.FindByID(ctx, productorID); err != nil {
		return nil, ErrNoEncontrado
	}

	var temporadaID *uuid.UUID
	if req.TemporadaID != "" {
		tid, err := uuid.Parse(req.TemporadaID)
		if err != nil {
			return nil, fmt.Errorf("temporada_id inválido: %w", err)
		}
		temporadaID = &tid
	}

	fecha := time.Now()
	if req.Fecha != nil {
		fecha = *req.Fecha
	}

	t := &model.Transaccion{
		Tipo:        req.Tipo,
		ProductorID: productorID,
		UsuarioID:   usuarioID,
		TemporadaID: temporadaID,
		Monto:       req.Monto,
		Fecha:       fecha,
		Detalles:    req.Detalles,
		Notas:       req.Notas,
		Metadata:    req.Metadata,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// validarDetalles checks the detail payload against the type tag. Exactly the
// variant matching the tag must be populated; each variant has its own rules.
func validarDetalles(tipo string, d model.DetalleTransaccion) error {
	valido := false
	for _, t := range model.TiposTransaccion {
		if t == tipo {
			valido = true
			break
		}
	}
	if !valido {
		return &ErrDetalleInvalido{Motivo: "tipo de transaccion desconocido: " + tipo}
	}

	switch tipo {
	case model.TransaccionAnticipo:
		if d.Anticipo == nil {
			// Un anticipo sin detalle es válido (sin tasa ni interés).
			return nil
		}
		return validarDetalleAnticipo(d.Anticipo)

	case model.TransaccionPago:
		if d.Pago == nil || strings.TrimSpace(d.Pago.Medio) == "" {
			return &ErrDetalleInvalido{Motivo: "PAGO requiere un medio de pago"}
		}

	case model.TransaccionDescuento:
		if d.Descuento == nil || strings.TrimSpace(d.Descuento.Motivo) == "" {
			return &ErrDetalleInvalido{Motivo: "DESCUENTO requiere un motivo"}
		}

	case model.TransaccionLiquidacion:
		if d.Liquidacion == nil || len(d.Liquidacion.RecepcionIDs) == 0 {
			return &ErrDetalleInvalido{Motivo: "LIQUIDACION requiere al menos una recepcion"}
		}
	}
	return nil
}

func validarDetalleAnticipo(a *model.DetalleAnticipo) error {
	if a.TasaAnticipo != nil {
		if a.TasaAnticipo.IsNegative() || a.TasaAnticipo.GreaterThan(decimal.NewFromInt(1)) {
			return &ErrDetalleInvalido{Motivo: "tasa_anticipo debe estar en [0, 1]"}
		}
	}
	if a.Interes == nil {
		return nil
	}
	i := a.Interes
	if i.TasaDiaria.IsNegative() {
		return &ErrDetalleInvalido{Motivo: "tasa_diaria de interes debe ser >= 0"}
	}
	if i.FechaInicio.IsZero() {
		return &ErrDetalleInvalido{Motivo: "interes requiere fecha_inicio"}
	}
	if i.FechaFin != nil && i.FechaFin.Before(i.FechaInicio) {
		return &ErrDetalleInvalido{Motivo: "fecha_fin de interes debe ser >= fecha_inicio"}
	}
	if i.MontoMinimo != nil && i.MontoMaximo != nil && i.MontoMinimo.GreaterThan(*i.MontoMaximo) {
		return &ErrDetalleInvalido{Motivo: "monto_minimo de interes debe ser <= monto_maximo"}
	}
	return nil
}

// ── Lectura / borrado ────────────────────────────────────────────────────────

func (s *transaccionService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return t, nil
}

func (s *transaccionService) Listar(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

func (s *transaccionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ObtenerPorID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// ── Referencias ──────────────────────────────────────────────────────────────

func (s *transaccionService) CrearReferencia(ctx context.Context, req dto.CrearReferenciaRequest) (*model.TransaccionReferencia, error) {
	productorID, err := uuid.Parse(req.ProductorID)
	if err != nil {
		return nil, fmt.Errorf("productor_id inválido: %w", err)
	}
	padreID, err := uuid.Parse(req.PadreID)
	if err != nil {
		return nil, fmt.Errorf("padre_id inválido: %w", err)
	}
	hijaID, err := uuid.Parse(req.HijaID)
	if err != nil {
		return nil, fmt.Errorf("hija_id inválido: %w", err)
	}
	if padreID == hijaID {
		return nil, &ErrDetalleInvalido{Motivo: "una transaccion no puede referenciarse a si misma"}
	}

	if _, err := s.productorRepo.FindByID(ctx, productorID); err != nil {
		return nil, ErrNoEncontrado
	}
	padre, err := s.repo.FindByID(ctx, padreID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.repo.FindByID(ctx, hijaID); err != nil {
		return nil, ErrNoEncontrado
	}

	return s.crearReferenciaIdempotente(ctx, &model.TransaccionReferencia{
		Codigo:      req.Codigo,
		ProductorID: productorID,
		PadreID:     padreID,
		HijaID:      hijaID,
		TipoPadre:   padre.Tipo,
	})
}

// crearReferenciaIdempotente creates the edge or returns the existing one for
// the same (codigo, productor, padre, hija) key. A unique index backs the key,
// so a concurrent duplicate insert surfaces as a constraint error and resolves
// to the surviving row.
func (s *transaccionService) crearReferenciaIdempotente(ctx context.Context, ref *model.TransaccionReferencia) (*model.TransaccionReferencia, error) {
	if existente, err := s.repo.FindReferencia(ctx, ref.Codigo, ref.ProductorID, ref.PadreID, ref.HijaID); err == nil {
		return existente, nil
	}
	if err := s.repo.CreateReferencia(ctx, ref); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.FindReferencia(ctx, ref.Codigo, ref.ProductorID, ref.PadreID, ref.HijaID)
		}
		return nil, err
	}
	return ref, nil
}

func (s *transaccionService) ReferenciasPorPadre(ctx context.Context, padreID uuid.UUID) ([]model.TransaccionReferencia, error) {
	return s.repo.ListReferenciasPorPadre(ctx, padreID)
}

func (s *transaccionService) ReferenciasPorHija(ctx context.Context, hijaID uuid.UUID) ([]model.TransaccionReferencia, error) {
	return s.repo.ListReferenciasPorHija(ctx, hijaID)
}

// ── Anticipo con pago ────────────────────────────────────────────────────────

// CrearAnticipoConPago creates the PAGO first, then the ANTICIPO, then the
// reference linking them (padre=anticipo, hija=pago). The three writes are
// deliberately NOT one transaction: once created, transactions are durable
// facts. If only the reference write fails, both rows are kept and the error
// is returned; the caller retries CrearReferencia, which is idempotent on the
// (codigo, productor, padre, hija) key.
func (s *transaccionService) CrearAnticipoConPago(ctx context.Context, usuarioID uuid.UUID, req dto.AnticipoConPagoRequest) (*AnticipoConPagoResultado, error) {
	pago, err := s.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionPago,
		ProductorID: req.ProductorID,
		TemporadaID: req.TemporadaID,
		Monto:       req.Monto,
		Fecha:       req.Fecha,
		Detalles:    model.DetalleTransaccion{Pago: &req.Pago},
		Notas:       req.Notas,
	})
	if err != nil {
		return nil, err
	}

	anticipo, err := s.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionAnticipo,
		ProductorID: req.ProductorID,
		TemporadaID: req.TemporadaID,
		Monto:       req.Monto,
		Fecha:       req.Fecha,
		Detalles:    model.DetalleTransaccion{Anticipo: &req.Anticipo},
		Notas:       req.Notas,
	})
	if err != nil {
		// The payment already exists as a durable fact; surface the failure
		// with enough context for manual reconciliation.
		log.Error().
			Str("pago_id", pago.ID.String()).
			Err(err).
			Msg("anticipo no creado tras persistir el pago")
		return nil, fmt.Errorf("anticipo no creado (pago %s ya persistido): %w", pago.ID, err)
	}

	ref, err := s.crearReferenciaIdempotente(ctx, &model.TransaccionReferencia{
		Codigo:      model.TransaccionAnticipo,
		ProductorID: anticipo.ProductorID,
		PadreID:     anticipo.ID,
		HijaID:      pago.ID,
		TipoPadre:   model.TransaccionAnticipo,
	})
	if err != nil {
		log.Error().
			Str("anticipo_id", anticipo.ID.String()).
			Str("pago_id", pago.ID.String()).
			Err(err).
			Msg("referencia anticipo→pago no creada; reintentar CrearReferencia")
		return &AnticipoConPagoResultado{Anticipo: anticipo, Pago: pago},
			fmt.Errorf("referencia no creada (anticipo %s y pago %s persistidos): %w", anticipo.ID, pago.ID, err)
	}

	return &AnticipoConPagoResultado{Anticipo: anticipo, Pago: pago, Referencia: ref}, nil
}

// ── Interés ──────────────────────────────────────────────────────────────────

// diasEntre counts whole days between two instants, comparing UTC dates.
// A reference date at or before inicio yields zero.
func diasEntre(inicio, fin time.Time) int64 {
	a := inicio.UTC().Truncate(24 * time.Hour)
	b := fin.UTC().Truncate(24 * time.Hour)
	if !b.After(a) {
		return 0
	}
	return int64(b.Sub(a) / (24 * time.Hour))
}

func (s *transaccionService) CalcularInteresAnticipo(anticipo *model.Transaccion, fechaRef time.Time) (decimal.Decimal, error) {
	if anticipo.Tipo != model.TransaccionAnticipo {
		return decimal.Zero, &ErrDetalleInvalido{Motivo: "la transaccion no es un ANTICIPO"}
	}
	if anticipo.Detalles.Anticipo == nil || anticipo.Detalles.Anticipo.Interes == nil {
		return decimal.Zero, &ErrDetalleInvalido{Motivo: "el anticipo no tiene configuracion de interes"}
	}
	cfg := anticipo.Detalles.Anticipo.Interes

	// Accrual stops at fecha_fin when configured.
	corte := fechaRef
	if cfg.FechaFin != nil && cfg.FechaFin.Before(corte) {
		corte = *cfg.FechaFin
	}

	dias := diasEntre(cfg.FechaInicio, corte)
	interes := anticipo.Monto.
		Mul(cfg.TasaDiaria).
		Mul(decimal.NewFromInt(dias)).
		Round(2)

	if cfg.MontoMinimo != nil && interes.LessThan(*cfg.MontoMinimo) {
		interes = *cfg.MontoMinimo
	}
	if cfg.MontoMaximo != nil && interes.GreaterThan(*cfg.MontoMaximo) {
		interes = *cfg.MontoMaximo
	}
	return interes, nil
}

func (s *transaccionService) GenerarTransaccionInteres(ctx context.Context, anticipoID uuid.UUID, fechaRef time.Time, usuarioID uuid.UUID) (*model.Transaccion, error) {
	anticipo, err := s.ObtenerPorID(ctx, anticipoID)
	if err != nil {
		return nil, err
	}

	interes, err := s.CalcularInteresAnticipo(anticipo, fechaRef)
	if err != nil {
		return nil, err
	}
	if interes.IsZero() {
		return nil, nil
	}

	// One accrual per day: if an INTERES child already exists for the cut
	// date, return it instead of stacking another charge.
	refs, err := s.repo.ListReferenciasPorPadre(ctx, anticipo.ID)
	if err != nil {
		return nil, err
	}
	corte := fechaRef.UTC().Truncate(24 * time.Hour)
	for _, ref := range refs {
		if ref.Codigo != model.TransaccionInteres {
			continue
		}
		hija, err := s.repo.FindByID(ctx, ref.HijaID)
		if err != nil {
			continue
		}
		if hija.Fecha.UTC().Truncate(24*time.Hour).Equal(corte) {
			return hija, nil
		}
	}

	t := &model.Transaccion{
		Tipo:        model.TransaccionInteres,
		ProductorID: anticipo.ProductorID,
		UsuarioID:   usuarioID,
		TemporadaID: anticipo.TemporadaID,
		Monto:       interes,
		Fecha:       fechaRef,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if _, err := s.crearReferenciaIdempotente(ctx, &model.TransaccionReferencia{
		Codigo:      model.TransaccionInteres,
		ProductorID: anticipo.ProductorID,
		PadreID:     anticipo.ID,
		HijaID:      t.ID,
		TipoPadre:   model.TransaccionAnticipo,
	}); err != nil {
		log.Error().
			Str("anticipo_id", anticipo.ID.String()).
			Str("interes_id", t.ID.String()).
			Err(err).
			Msg("referencia anticipo→interes no creada; reintentar CrearReferencia")
		return t, fmt.Errorf("referencia no creada (interes %s persistido): %w", t.ID, err)
	}
	return t, nil
}
