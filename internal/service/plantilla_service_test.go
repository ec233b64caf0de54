package service

import (
	"context"
	"testing"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePlantillaRepo struct {
	plantillas map[uuid.UUID]*model.Plantilla
}

var _ repository.PlantillaRepository = (*fakePlantillaRepo)(nil)

func newFakePlantillaRepo() *fakePlantillaRepo {
	return &fakePlantillaRepo{plantillas: make(map[uuid.UUID]*model.Plantilla)}
}

func (f *fakePlantillaRepo) Create(ctx context.Context, p *model.Plantilla) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.plantillas[p.ID] = p
	return nil
}

func (f *fakePlantillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plantilla, error) {
	p, ok := f.plantillas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePlantillaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Plantilla, error) {
	for _, p := range f.plantillas {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlantillaRepo) FindPredeterminada(ctx context.Context) (*model.Plantilla, error) {
	for _, p := range f.plantillas {
		if p.Predeterminada {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlantillaRepo) List(ctx context.Context) ([]model.Plantilla, error) {
	out := make([]model.Plantilla, 0, len(f.plantillas))
	for _, p := range f.plantillas {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlantillaRepo) Update(ctx context.Context, p *model.Plantilla) error {
	if _, ok := f.plantillas[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.plantillas[p.ID] = p
	return nil
}

func (f *fakePlantillaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.plantillas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.plantillas, id)
	return nil
}

func (f *fakePlantillaRepo) SetPredeterminada(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.plantillas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, p := range f.plantillas {
		p.Predeterminada = p.ID == id
	}
	return nil
}

func plantillaReq(nombre string) dto.CrearPlantillaRequest {
	tol := decimal.NewFromInt(15)
	return dto.CrearPlantillaRequest{
		Nombre: nombre,
		Parametros: map[string]dto.ParametroCampoRequest{
			"humedad":   {Disponible: true, Tolerancia: &tol, MostrarTolerancia: true},
			"impurezas": {Disponible: true, Tolerancia: &tol},
		},
	}
}

func TestPlantillaCrear(t *testing.T) {
	repo := newFakePlantillaRepo()
	svc := NewPlantillaService(repo)
	ctx := context.Background()

	p, err := svc.Crear(ctx, plantillaReq("temporada 2026"))
	require.NoError(t, err)
	assert.True(t, p.Humedad.Disponible)
	assert.Equal(t, "15", p.Humedad.Tolerancia.String())
	assert.False(t, p.Vano.Disponible)
	assert.False(t, p.Predeterminada)

	// Duplicate name rejected.
	_, err = svc.Crear(ctx, plantillaReq("temporada 2026"))
	assert.Error(t, err)
}

func TestPlantillaCrearPredeterminadaDirecta(t *testing.T) {
	repo := newFakePlantillaRepo()
	svc := NewPlantillaService(repo)
	ctx := context.Background()

	req := plantillaReq("base")
	req.Predeterminada = true
	p, err := svc.Crear(ctx, req)
	require.NoError(t, err)
	assert.True(t, p.Predeterminada)

	def, err := svc.Predeterminada(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, def.ID)
}

func TestPlantillaSetPredeterminadaConservaUnaSola(t *testing.T) {
	repo := newFakePlantillaRepo()
	svc := NewPlantillaService(repo)
	ctx := context.Background()

	a, err := svc.Crear(ctx, plantillaReq("a"))
	require.NoError(t, err)
	b, err := svc.Crear(ctx, plantillaReq("b"))
	require.NoError(t, err)

	require.NoError(t, svc.SetPredeterminada(ctx, a.ID))
	require.NoError(t, svc.SetPredeterminada(ctx, b.ID))

	var defaults int
	plantillas, err := svc.Listar(ctx)
	require.NoError(t, err)
	for _, p := range plantillas {
		if p.Predeterminada {
			defaults++
			assert.Equal(t, b.ID, p.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	assert.ErrorIs(t, svc.SetPredeterminada(ctx, uuid.New()), ErrNoEncontrado)
}

func TestPlantillaPredeterminadaNoConfigurada(t *testing.T) {
	svc := NewPlantillaService(newFakePlantillaRepo())

	_, err := svc.Predeterminada(context.Background())
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestPlantillaActualizar(t *testing.T) {
	repo := newFakePlantillaRepo()
	svc := NewPlantillaService(repo)
	ctx := context.Background()

	p, err := svc.Crear(ctx, plantillaReq("original"))
	require.NoError(t, err)
	require.NoError(t, svc.SetPredeterminada(ctx, p.ID))

	req := plantillaReq("renombrada")
	req.UsaToleranciaGrupo = true
	req.ToleranciaGrupo = decimal.NewFromInt(4)
	actualizada, err := svc.Actualizar(ctx, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "renombrada", actualizada.Nombre)
	assert.True(t, actualizada.UsaToleranciaGrupo)
	// The default flag survives a full update.
	assert.True(t, actualizada.Predeterminada)

	// Renaming onto another plantilla's name is rejected.
	otra, err := svc.Crear(ctx, plantillaReq("ocupada"))
	require.NoError(t, err)
	_, err = svc.Actualizar(ctx, otra.ID, plantillaReq("renombrada"))
	assert.Error(t, err)
}

func TestPlantillaEliminar(t *testing.T) {
	repo := newFakePlantillaRepo()
	svc := NewPlantillaService(repo)
	ctx := context.Background()

	def, err := svc.Crear(ctx, plantillaReq("default"))
	require.NoError(t, err)
	require.NoError(t, svc.SetPredeterminada(ctx, def.ID))
	otra, err := svc.Crear(ctx, plantillaReq("descartable"))
	require.NoError(t, err)

	// The default plantilla cannot be removed.
	assert.Error(t, svc.Eliminar(ctx, def.ID))
	require.NoError(t, svc.Eliminar(ctx, otra.ID))
	_, err = svc.ObtenerPorID(ctx, otra.ID)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
