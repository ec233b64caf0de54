package service

import (
	"context"
	"testing"

	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTemporadaRepo struct {
	temporadas map[uuid.UUID]*model.Temporada
}

var _ repository.TemporadaRepository = (*fakeTemporadaRepo)(nil)

func newFakeTemporadaRepo() *fakeTemporadaRepo {
	return &fakeTemporadaRepo{temporadas: make(map[uuid.UUID]*model.Temporada)}
}

func (f *fakeTemporadaRepo) Create(ctx context.Context, t *model.Temporada) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.temporadas[t.ID] = t
	return nil
}

func (f *fakeTemporadaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Temporada, error) {
	t, ok := f.temporadas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTemporadaRepo) FindActiva(ctx context.Context) (*model.Temporada, error) {
	for _, t := range f.temporadas {
		if t.Activa {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTemporadaRepo) List(ctx context.Context) ([]model.Temporada, error) {
	var out []model.Temporada
	for _, t := range f.temporadas {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTemporadaRepo) Update(ctx context.Context, t *model.Temporada) error {
	if _, ok := f.temporadas[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.temporadas[t.ID] = t
	return nil
}

func TestTemporadaCrearYCerrar(t *testing.T) {
	repo := newFakeTemporadaRepo()
	svc := NewTemporadaService(repo)
	ctx := context.Background()

	temporada, err := svc.Crear(ctx, dto.CrearTemporadaRequest{
		Nombre: "2026/2027",
		Inicio: fechaUTC(2026, 10, 1),
	})
	require.NoError(t, err)
	assert.True(t, temporada.Activa)

	activa, err := svc.ObtenerActiva(ctx)
	require.NoError(t, err)
	assert.Equal(t, temporada.ID, activa.ID)

	cerrada, err := svc.Cerrar(ctx, temporada.ID, dto.CerrarTemporadaRequest{
		Fin: fechaUTC(2027, 3, 31),
	})
	require.NoError(t, err)
	assert.False(t, cerrada.Activa)
	require.NotNil(t, cerrada.Fin)
	assert.Equal(t, fechaUTC(2027, 3, 31), *cerrada.Fin)

	_, err = svc.ObtenerActiva(ctx)
	assert.ErrorIs(t, err, ErrNoEncontrado)

	_, err = svc.Cerrar(ctx, uuid.New(), dto.CerrarTemporadaRequest{Fin: fechaUTC(2027, 3, 31)})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
