package service

import (
	"context"
	"testing"

	"github.com/fchandiac/paddy-backend-sub000/internal/config"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (f *fakeUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.usuarios[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := f.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsuarioRepo) ListAll(ctx context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	if _, ok := f.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.usuarios[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := f.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (f *fakeUsuarioRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	u, ok := f.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func TestAuthCrearUsuarioYLogin(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	creado, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "mtorres",
		Nombre:   "María Torres",
		Password: "clave-segura",
		Rol:      "contador",
	})
	require.NoError(t, err)
	assert.True(t, creado.Activo)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "mtorres", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "contador", resp.User.Rol)

	// Wrong password and unknown user both fail with the same opaque error.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "mtorres", Password: "otra"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.Error(t, err)
}

func TestAuthRefresh(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "operador1", Nombre: "Op", Password: "1234", Rol: "operador",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "operador1", Password: "1234"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)

	_, err = svc.Refresh(ctx, "no-es-un-token")
	assert.Error(t, err)
}

func TestAuthRefreshRechazaUsuarioInactivo(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	u, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "saliente", Nombre: "S", Password: "1234", Rol: "operador",
	})
	require.NoError(t, err)
	login, err := svc.Login(ctx, dto.LoginRequest{Username: "saliente", Password: "1234"})
	require.NoError(t, err)

	id, err := uuid.Parse(u.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(ctx, id))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.Error(t, err)

	// Reactivation restores the session flow.
	require.NoError(t, svc.ReactivarUsuario(ctx, id))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthActualizarUsuario(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	u, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "cambiante", Nombre: "Antes", Password: "vieja", Rol: "operador",
	})
	require.NoError(t, err)
	id, err := uuid.Parse(u.ID)
	require.NoError(t, err)

	actualizado, err := svc.ActualizarUsuario(ctx, id, dto.ActualizarUsuarioRequest{
		Nombre:   "Después",
		Rol:      "administrador",
		Password: "nueva",
	})
	require.NoError(t, err)
	assert.Equal(t, "Después", actualizado.Nombre)
	assert.Equal(t, "administrador", actualizado.Rol)

	// The new password takes effect immediately.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "cambiante", Password: "vieja"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "cambiante", Password: "nueva"})
	assert.NoError(t, err)
}

func TestAuthListarUsuarios(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, authConfig())
	ctx := context.Background()

	a, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{Username: "a", Nombre: "A", Password: "x", Rol: "operador"})
	require.NoError(t, err)
	_, err = svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{Username: "b", Nombre: "B", Password: "x", Rol: "contador"})
	require.NoError(t, err)

	id, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(ctx, id))

	activos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
