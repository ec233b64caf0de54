package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DescuentoService interface {
	// Resolver returns the discount percent for a measured value, scanning the
	// active ranges of the category. Exactly one range may contain the value.
	Resolver(ctx context.Context, codigoCategoria int, valor decimal.Decimal) (decimal.Decimal, error)
	Crear(ctx context.Context, req dto.CrearRangoRequest) (*model.RangoDescuento, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRangoRequest) (*model.RangoDescuento, error)
	Listar(ctx context.Context, codigoCategoria int) ([]model.RangoDescuento, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type descuentoService struct {
	repo repository.RangoDescuentoRepository
}

func NewDescuentoService(repo repository.RangoDescuentoRepository) DescuentoService {
	return &descuentoService{repo: repo}
}

// runSerializableTx executes fn inside a SERIALIZABLE transaction when db is
// available, or calls fn(nil) directly when db is nil (unit test mode — the
// in-memory repos are single-writer). Serializable isolation is what makes the
// overlap check safe under concurrent writers: two inserts for intersecting
// ranges cannot both pass the check and commit.
func runSerializableTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// ── Resolver ─────────────────────────────────────────────────────────────────

func (s *descuentoService) Resolver(ctx context.Context, codigoCategoria int, valor decimal.Decimal) (decimal.Decimal, error) {
	rangos, err := s.repo.FindContenedores(ctx, codigoCategoria, valor)
	if err != nil {
		return decimal.Zero, err
	}

	switch len(rangos) {
	case 0:
		return decimal.Zero, &ErrSinRangoDescuento{CodigoCategoria: codigoCategoria, Valor: valor}
	case 1:
		return rangos[0].Porcentaje, nil
	default:
		// Stored data broke the no-overlap invariant. Server-side bug: log
		// loudly and abort, never default to zero or pick a winner.
		log.Error().
			Int("codigo_categoria", codigoCategoria).
			Str("valor", valor.String()).
			Int("coincidencias", len(rangos)).
			Msg("rangos de descuento solapados en datos almacenados")
		return decimal.Zero, &ErrViolacionIntegridad{
			CodigoCategoria: codigoCategoria,
			Valor:           valor,
			Coincidencias:   len(rangos),
		}
	}
}

// ── Crear / Actualizar ───────────────────────────────────────────────────────

func (s *descuentoService) Crear(ctx context.Context, req dto.CrearRangoRequest) (*model.RangoDescuento, error) {
	if req.Desde.GreaterThan(req.Hasta) {
		return nil, ErrRangoInvalido
	}

	rango := &model.RangoDescuento{
		CodigoCategoria: req.CodigoCategoria,
		Desde:           req.Desde,
		Hasta:           req.Hasta,
		Porcentaje:      req.Porcentaje,
	}

	err := runSerializableTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.ensureNoOverlap(tx, req.CodigoCategoria, req.Desde, req.Hasta, nil); err != nil {
			return err
		}
		return s.repo.CreateTx(tx, rango)
	})
	if err != nil {
		return nil, err
	}
	return rango, nil
}

func (s *descuentoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRangoRequest) (*model.RangoDescuento, error) {
	if req.Desde.GreaterThan(req.Hasta) {
		return nil, ErrRangoInvalido
	}

	rango, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	err = runSerializableTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Exclude the record's own id: shrinking or shifting a range so that
		// it only "overlaps" itself must succeed.
		if err := s.ensureNoOverlap(tx, rango.CodigoCategoria, req.Desde, req.Hasta, &rango.ID); err != nil {
			return err
		}
		rango.Desde = req.Desde
		rango.Hasta = req.Hasta
		rango.Porcentaje = req.Porcentaje
		return s.repo.SaveTx(tx, rango)
	})
	if err != nil {
		return nil, err
	}
	return rango, nil
}

// ensureNoOverlap fails with ErrRangoDuplicado for an exact triple match and
// with ErrRangoSolapado for any other intersection. Runs inside the caller's
// serializable tx so the check and the write are one logical operation.
func (s *descuentoService) ensureNoOverlap(tx *gorm.DB, codigoCategoria int, desde, hasta decimal.Decimal, excluirID *uuid.UUID) error {
	solapados, err := s.repo.FindSolapadosTx(tx, codigoCategoria, desde, hasta, excluirID)
	if err != nil {
		return err
	}
	for i := range solapados {
		if solapados[i].Desde.Equal(desde) && solapados[i].Hasta.Equal(hasta) {
			return ErrRangoDuplicado
		}
	}
	if len(solapados) > 0 {
		return &ErrRangoSolapado{Conflicto: solapados[0]}
	}
	return nil
}

// ── Listar / Eliminar ────────────────────────────────────────────────────────

func (s *descuentoService) Listar(ctx context.Context, codigoCategoria int) ([]model.RangoDescuento, error) {
	return s.repo.ListByCategoria(ctx, codigoCategoria)
}

func (s *descuentoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
