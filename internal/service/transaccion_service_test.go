package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTransaccionRepo struct {
	transacciones map[uuid.UUID]*model.Transaccion
	referencias   []*model.TransaccionReferencia

	// failCreateAfter aborts Create once the stored count reaches the limit;
	// exercises the partial-failure paths of the composite operations.
	failCreateAfter int
	failReferencia  bool
}

var _ repository.TransaccionRepository = (*fakeTransaccionRepo)(nil)

func newFakeTransaccionRepo() *fakeTransaccionRepo {
	return &fakeTransaccionRepo{
		transacciones:   make(map[uuid.UUID]*model.Transaccion),
		failCreateAfter: -1,
	}
}

func (f *fakeTransaccionRepo) Create(ctx context.Context, t *model.Transaccion) error {
	if f.failCreateAfter >= 0 && len(f.transacciones) >= f.failCreateAfter {
		return gorm.ErrInvalidTransaction
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.transacciones[t.ID] = t
	return nil
}

func (f *fakeTransaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	t, ok := f.transacciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTransaccionRepo) List(ctx context.Context, filter dto.TransaccionFilter) ([]model.Transaccion, int64, error) {
	var out []model.Transaccion
	for _, t := range f.transacciones {
		if filter.ProductorID != "" && t.ProductorID.String() != filter.ProductorID {
			continue
		}
		if filter.Tipo != "" && t.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTransaccionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.transacciones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.transacciones, id)
	return nil
}

func (f *fakeTransaccionRepo) ListAnticiposConInteres(ctx context.Context, corte time.Time) ([]model.Transaccion, error) {
	var out []model.Transaccion
	for _, t := range f.transacciones {
		if t.Tipo != model.TransaccionAnticipo || t.Detalles.Anticipo == nil || t.Detalles.Anticipo.Interes == nil {
			continue
		}
		if t.Detalles.Anticipo.Interes.FechaInicio.After(corte) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTransaccionRepo) CreateReferencia(ctx context.Context, ref *model.TransaccionReferencia) error {
	if f.failReferencia {
		return gorm.ErrInvalidTransaction
	}
	for _, r := range f.referencias {
		if r.Codigo == ref.Codigo && r.ProductorID == ref.ProductorID &&
			r.PadreID == ref.PadreID && r.HijaID == ref.HijaID {
			return gorm.ErrDuplicatedKey
		}
	}
	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	f.referencias = append(f.referencias, ref)
	return nil
}

func (f *fakeTransaccionRepo) FindReferencia(ctx context.Context, codigo string, productorID, padreID, hijaID uuid.UUID) (*model.TransaccionReferencia, error) {
	for _, r := range f.referencias {
		if r.Codigo == codigo && r.ProductorID == productorID &&
			r.PadreID == padreID && r.HijaID == hijaID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransaccionRepo) ListReferenciasPorPadre(ctx context.Context, padreID uuid.UUID) ([]model.TransaccionReferencia, error) {
	var out []model.TransaccionReferencia
	for _, r := range f.referencias {
		if r.PadreID == padreID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeTransaccionRepo) ListReferenciasPorHija(ctx context.Context, hijaID uuid.UUID) ([]model.TransaccionReferencia, error) {
	var out []model.TransaccionReferencia
	for _, r := range f.referencias {
		if r.HijaID == hijaID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeProductorRepo struct {
	productores map[uuid.UUID]*model.Productor
}

var _ repository.ProductorRepository = (*fakeProductorRepo)(nil)

func newFakeProductorRepo() *fakeProductorRepo {
	return &fakeProductorRepo{productores: make(map[uuid.UUID]*model.Productor)}
}

func (f *fakeProductorRepo) Create(ctx context.Context, p *model.Productor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.productores[p.ID] = p
	return nil
}

func (f *fakeProductorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Productor, error) {
	p, ok := f.productores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductorRepo) FindByRut(ctx context.Context, rut string) (*model.Productor, error) {
	for _, p := range f.productores {
		if p.Rut == rut {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductorRepo) List(ctx context.Context, busqueda string, page, limit int) ([]model.Productor, int64, error) {
	var out []model.Productor
	for _, p := range f.productores {
		if busqueda != "" && !strings.Contains(p.RazonSocial, busqueda) && !strings.Contains(p.Rut, busqueda) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductorRepo) Update(ctx context.Context, p *model.Productor) error {
	if _, ok := f.productores[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.productores[p.ID] = p
	return nil
}

func (f *fakeProductorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.productores[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.productores, id)
	return nil
}

func seedProductor(t *testing.T, repo *fakeProductorRepo) *model.Productor {
	t.Helper()
	p := &model.Productor{Rut: "12.345.678-5", RazonSocial: "Agrícola Los Maitenes"}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func fechaUTC(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func anticipoConInteres(t *testing.T, svc TransaccionService, productorID uuid.UUID, monto string, cfg model.ConfigInteres) *model.Transaccion {
	t.Helper()
	anticipo, err := svc.Crear(context.Background(), uuid.New(), dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionAnticipo,
		ProductorID: productorID.String(),
		Monto:       dec(monto),
		Detalles: model.DetalleTransaccion{
			Anticipo: &model.DetalleAnticipo{Interes: &cfg},
		},
	})
	require.NoError(t, err)
	return anticipo
}

func TestTransaccionCrear(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()

	productor := seedProductor(t, productores)
	usuarioID := uuid.New()

	tx, err := svc.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionPago,
		ProductorID: productor.ID.String(),
		Monto:       dec("150000.00"),
		Detalles: model.DetalleTransaccion{
			Pago: &model.DetallePago{Medio: "transferencia"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, usuarioID, tx.UsuarioID)
	assert.False(t, tx.Fecha.IsZero())

	// Unknown producer is rejected before writing.
	_, err = svc.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionPago,
		ProductorID: uuid.NewString(),
		Monto:       dec("1.00"),
		Detalles:    model.DetalleTransaccion{Pago: &model.DetallePago{Medio: "efectivo"}},
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestTransaccionValidaDetallesPorTipo(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	casos := []struct {
		nombre   string
		tipo     string
		detalles model.DetalleTransaccion
	}{
		{"pago sin medio", model.TransaccionPago, model.DetalleTransaccion{Pago: &model.DetallePago{}}},
		{"pago sin detalle", model.TransaccionPago, model.DetalleTransaccion{}},
		{"descuento sin motivo", model.TransaccionDescuento, model.DetalleTransaccion{Descuento: &model.DetalleDescuento{}}},
		{"liquidacion sin recepciones", model.TransaccionLiquidacion, model.DetalleTransaccion{Liquidacion: &model.DetalleLiquidacion{}}},
		{"tipo desconocido", "REGALO", model.DetalleTransaccion{}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := svc.Crear(ctx, uuid.New(), dto.CrearTransaccionRequest{
				Tipo:        c.tipo,
				ProductorID: productor.ID.String(),
				Monto:       dec("100.00"),
				Detalles:    c.detalles,
			})
			var det *ErrDetalleInvalido
			assert.ErrorAs(t, err, &det)
		})
	}

	// Advance without detail is allowed (no rate, no interest).
	_, err := svc.Crear(ctx, uuid.New(), dto.CrearTransaccionRequest{
		Tipo:        model.TransaccionAnticipo,
		ProductorID: productor.ID.String(),
		Monto:       dec("100.00"),
	})
	assert.NoError(t, err)
}

func TestTransaccionValidaConfigInteres(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	crear := func(a model.DetalleAnticipo) error {
		_, err := svc.Crear(ctx, uuid.New(), dto.CrearTransaccionRequest{
			Tipo:        model.TransaccionAnticipo,
			ProductorID: productor.ID.String(),
			Monto:       dec("100000.00"),
			Detalles:    model.DetalleTransaccion{Anticipo: &a},
		})
		return err
	}

	tasaFuera := dec("1.50")
	assert.Error(t, crear(model.DetalleAnticipo{TasaAnticipo: &tasaFuera}))

	assert.Error(t, crear(model.DetalleAnticipo{Interes: &model.ConfigInteres{
		TasaDiaria: dec("-0.001"), FechaInicio: fechaUTC(2026, 1, 1),
	}}))
	assert.Error(t, crear(model.DetalleAnticipo{Interes: &model.ConfigInteres{
		TasaDiaria: dec("0.001"),
	}}))
	fin := fechaUTC(2025, 12, 1)
	assert.Error(t, crear(model.DetalleAnticipo{Interes: &model.ConfigInteres{
		TasaDiaria: dec("0.001"), FechaInicio: fechaUTC(2026, 1, 1), FechaFin: &fin,
	}}))
	minimo, maximo := dec("5000"), dec("1000")
	assert.Error(t, crear(model.DetalleAnticipo{Interes: &model.ConfigInteres{
		TasaDiaria: dec("0.001"), FechaInicio: fechaUTC(2026, 1, 1),
		MontoMinimo: &minimo, MontoMaximo: &maximo,
	}}))

	tasaOK := dec("0.50")
	assert.NoError(t, crear(model.DetalleAnticipo{
		TasaAnticipo: &tasaOK,
		Interes:      &model.ConfigInteres{TasaDiaria: dec("0.001"), FechaInicio: fechaUTC(2026, 1, 1)},
	}))
}

func TestCrearReferenciaIdempotente(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)
	usuarioID := uuid.New()

	anticipo, err := svc.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo: model.TransaccionAnticipo, ProductorID: productor.ID.String(), Monto: dec("1000.00"),
	})
	require.NoError(t, err)
	pago, err := svc.Crear(ctx, usuarioID, dto.CrearTransaccionRequest{
		Tipo: model.TransaccionPago, ProductorID: productor.ID.String(), Monto: dec("1000.00"),
		Detalles: model.DetalleTransaccion{Pago: &model.DetallePago{Medio: "cheque"}},
	})
	require.NoError(t, err)

	req := dto.CrearReferenciaRequest{
		Codigo:      model.TransaccionAnticipo,
		ProductorID: productor.ID.String(),
		PadreID:     anticipo.ID.String(),
		HijaID:      pago.ID.String(),
	}
	ref, err := svc.CrearReferencia(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.TransaccionAnticipo, ref.TipoPadre)

	// Same key again returns the surviving edge, not a duplicate.
	ref2, err := svc.CrearReferencia(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ref.ID, ref2.ID)
	assert.Len(t, repo.referencias, 1)

	// Self reference rejected.
	_, err = svc.CrearReferencia(ctx, dto.CrearReferenciaRequest{
		Codigo:      model.TransaccionAnticipo,
		ProductorID: productor.ID.String(),
		PadreID:     anticipo.ID.String(),
		HijaID:      anticipo.ID.String(),
	})
	var det *ErrDetalleInvalido
	assert.ErrorAs(t, err, &det)

	hijas, err := svc.ReferenciasPorPadre(ctx, anticipo.ID)
	require.NoError(t, err)
	require.Len(t, hijas, 1)
	assert.Equal(t, pago.ID, hijas[0].HijaID)

	padres, err := svc.ReferenciasPorHija(ctx, pago.ID)
	require.NoError(t, err)
	require.Len(t, padres, 1)
	assert.Equal(t, anticipo.ID, padres[0].PadreID)
}

func TestCrearAnticipoConPago(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	res, err := svc.CrearAnticipoConPago(ctx, uuid.New(), dto.AnticipoConPagoRequest{
		ProductorID: productor.ID.String(),
		Monto:       dec("500000.00"),
		Anticipo:    model.DetalleAnticipo{},
		Pago:        model.DetallePago{Medio: "transferencia"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Referencia)
	assert.Equal(t, model.TransaccionAnticipo, res.Anticipo.Tipo)
	assert.Equal(t, model.TransaccionPago, res.Pago.Tipo)
	assert.Equal(t, res.Anticipo.ID, res.Referencia.PadreID)
	assert.Equal(t, res.Pago.ID, res.Referencia.HijaID)
}

func TestCrearAnticipoConPagoFallaParcial(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	// Second Create (the advance) fails: the payment survives and the error
	// names it for reconciliation.
	repo.failCreateAfter = 1
	_, err := svc.CrearAnticipoConPago(ctx, uuid.New(), dto.AnticipoConPagoRequest{
		ProductorID: productor.ID.String(),
		Monto:       dec("500000.00"),
		Pago:        model.DetallePago{Medio: "transferencia"},
	})
	require.Error(t, err)
	assert.Len(t, repo.transacciones, 1)

	// Reference write fails: both rows are returned with the error so the
	// caller can retry CrearReferencia.
	repo2 := newFakeTransaccionRepo()
	repo2.failReferencia = true
	svc2 := NewTransaccionService(repo2, productores)
	res, err := svc2.CrearAnticipoConPago(ctx, uuid.New(), dto.AnticipoConPagoRequest{
		ProductorID: productor.ID.String(),
		Monto:       dec("500000.00"),
		Pago:        model.DetallePago{Medio: "transferencia"},
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.NotNil(t, res.Anticipo)
	assert.NotNil(t, res.Pago)
	assert.Nil(t, res.Referencia)
}

func TestCalcularInteresAnticipo(t *testing.T) {
	svc := NewTransaccionService(newFakeTransaccionRepo(), newFakeProductorRepo())

	anticipo := &model.Transaccion{
		Tipo:  model.TransaccionAnticipo,
		Monto: dec("100000.00"),
		Detalles: model.DetalleTransaccion{Anticipo: &model.DetalleAnticipo{
			Interes: &model.ConfigInteres{
				TasaDiaria:  dec("0.001"),
				FechaInicio: fechaUTC(2026, 1, 1),
			},
		}},
	}

	// 100000 × 0.001 × 30 días.
	interes, err := svc.CalcularInteresAnticipo(anticipo, fechaUTC(2026, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "3000", interes.String())

	// Reference date on or before fecha_inicio accrues nothing.
	interes, err = svc.CalcularInteresAnticipo(anticipo, fechaUTC(2026, 1, 1))
	require.NoError(t, err)
	assert.True(t, interes.IsZero())
	interes, err = svc.CalcularInteresAnticipo(anticipo, fechaUTC(2025, 12, 1))
	require.NoError(t, err)
	assert.True(t, interes.IsZero())
}

func TestCalcularInteresAnticipoTopesYCorte(t *testing.T) {
	svc := NewTransaccionService(newFakeTransaccionRepo(), newFakeProductorRepo())

	maximo := dec("2000.00")
	fin := fechaUTC(2026, 1, 11)
	anticipo := &model.Transaccion{
		Tipo:  model.TransaccionAnticipo,
		Monto: dec("100000.00"),
		Detalles: model.DetalleTransaccion{Anticipo: &model.DetalleAnticipo{
			Interes: &model.ConfigInteres{
				TasaDiaria:  dec("0.001"),
				FechaInicio: fechaUTC(2026, 1, 1),
				MontoMaximo: &maximo,
			},
		}},
	}

	// 30 days accrue 3000, clamped to the 2000 ceiling.
	interes, err := svc.CalcularInteresAnticipo(anticipo, fechaUTC(2026, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "2000", interes.String())

	// fecha_fin stops accrual: 10 days, not 30.
	anticipo.Detalles.Anticipo.Interes.FechaFin = &fin
	anticipo.Detalles.Anticipo.Interes.MontoMaximo = nil
	interes, err = svc.CalcularInteresAnticipo(anticipo, fechaUTC(2026, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "1000", interes.String())
}

func TestCalcularInteresRechazaNoAnticipo(t *testing.T) {
	svc := NewTransaccionService(newFakeTransaccionRepo(), newFakeProductorRepo())

	_, err := svc.CalcularInteresAnticipo(&model.Transaccion{Tipo: model.TransaccionPago}, time.Now())
	var det *ErrDetalleInvalido
	assert.ErrorAs(t, err, &det)

	_, err = svc.CalcularInteresAnticipo(&model.Transaccion{Tipo: model.TransaccionAnticipo}, time.Now())
	assert.ErrorAs(t, err, &det)
}

func TestGenerarTransaccionInteres(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)
	usuarioID := uuid.New()

	anticipo := anticipoConInteres(t, svc, productor.ID, "100000.00", model.ConfigInteres{
		TasaDiaria:  dec("0.001"),
		FechaInicio: fechaUTC(2026, 1, 1),
	})

	interes, err := svc.GenerarTransaccionInteres(ctx, anticipo.ID, fechaUTC(2026, 1, 31), usuarioID)
	require.NoError(t, err)
	require.NotNil(t, interes)
	assert.Equal(t, model.TransaccionInteres, interes.Tipo)
	assert.Equal(t, "3000", interes.Monto.String())
	assert.Equal(t, productor.ID, interes.ProductorID)

	refs, err := svc.ReferenciasPorPadre(ctx, anticipo.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, model.TransaccionInteres, refs[0].Codigo)
	assert.Equal(t, interes.ID, refs[0].HijaID)
}

func TestGenerarTransaccionInteresIdempotentePorDia(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)
	usuarioID := uuid.New()

	anticipo := anticipoConInteres(t, svc, productor.ID, "100000.00", model.ConfigInteres{
		TasaDiaria:  dec("0.001"),
		FechaInicio: fechaUTC(2026, 1, 1),
	})

	primero, err := svc.GenerarTransaccionInteres(ctx, anticipo.ID, fechaUTC(2026, 1, 31), usuarioID)
	require.NoError(t, err)
	require.NotNil(t, primero)

	// Same accrual day: the existing row comes back, nothing new is written.
	segundo, err := svc.GenerarTransaccionInteres(ctx, anticipo.ID, fechaUTC(2026, 1, 31).Add(6*time.Hour), usuarioID)
	require.NoError(t, err)
	require.NotNil(t, segundo)
	assert.Equal(t, primero.ID, segundo.ID)
	assert.Len(t, repo.referencias, 1)

	// Next day accrues a fresh charge.
	tercero, err := svc.GenerarTransaccionInteres(ctx, anticipo.ID, fechaUTC(2026, 2, 1), usuarioID)
	require.NoError(t, err)
	require.NotNil(t, tercero)
	assert.NotEqual(t, primero.ID, tercero.ID)
}

func TestGenerarTransaccionInteresCero(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	anticipo := anticipoConInteres(t, svc, productor.ID, "100000.00", model.ConfigInteres{
		TasaDiaria:  dec("0.001"),
		FechaInicio: fechaUTC(2026, 6, 1),
	})

	// No days elapsed: nothing is created.
	interes, err := svc.GenerarTransaccionInteres(ctx, anticipo.ID, fechaUTC(2026, 6, 1), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, interes)
	assert.Len(t, repo.transacciones, 1)
}

func TestTransaccionEliminar(t *testing.T) {
	repo := newFakeTransaccionRepo()
	productores := newFakeProductorRepo()
	svc := NewTransaccionService(repo, productores)
	ctx := context.Background()
	productor := seedProductor(t, productores)

	tx, err := svc.Crear(ctx, uuid.New(), dto.CrearTransaccionRequest{
		Tipo: model.TransaccionAnticipo, ProductorID: productor.ID.String(), Monto: dec("100.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, tx.ID))
	assert.ErrorIs(t, svc.Eliminar(ctx, tx.ID), ErrNoEncontrado)
}
