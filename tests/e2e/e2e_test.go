//go:build integration

package e2e

// End-to-end integration tests against real Postgres + Redis via
// testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - login → maestros → recepción → liquidar → transacción LIQUIDACION
//   - rango de descuento solapado rechazado con 409
//   - anticipo con pago y referencia idempotente
//   - interés de anticipo consultado por fecha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fchandiac/paddy-backend-sub000/internal/config"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/infra"
	"github.com/fchandiac/paddy-backend-sub000/internal/model"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"
	"github.com/fchandiac/paddy-backend-sub000/internal/router"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("paddy_test"),
		tcPostgres.WithUsername("paddy"),
		tcPostgres.WithPassword("paddy"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	// Seed the admin through the service so the hash matches the runtime cost.
	authSvc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
	_, err = authSvc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "admin",
		Nombre:   "Admin E2E",
		Password: "paddy2026",
		Rol:      "administrador",
	})
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "paddy2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
		db:     db,
	}
}

type idResp struct {
	ID string `json:"ID"`
}

// seedMaestros creates a producer, a rice type, discount ranges for every
// category and a default plantilla; returns (productorID, tipoArrozID).
func seedMaestros(t *testing.T, env *testEnv) (string, string) {
	t.Helper()

	prodResp := do(t, env.server, "POST", "/v1/productores",
		jsonBody(t, map[string]any{
			"rut":          "76.543.210-K",
			"razon_social": "Agrícola E2E",
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var productor idResp
	decodeJSON(t, prodResp, &productor)

	tipoResp := do(t, env.server, "POST", "/v1/tipos-arroz",
		jsonBody(t, map[string]any{"nombre": "Zafiro", "precio": "450.00"}), env.token)
	require.Equal(t, http.StatusCreated, tipoResp.StatusCode)
	var tipo idResp
	decodeJSON(t, tipoResp, &tipo)

	for codigo := 1; codigo <= 8; codigo++ {
		for _, r := range [][3]string{
			{"0.00", "15.00", "0.00"},
			{"15.01", "15.50", "1.00"},
			{"15.51", "30.00", "2.00"},
		} {
			resp := do(t, env.server, "POST", "/v1/descuentos/rangos",
				jsonBody(t, map[string]any{
					"codigo_categoria": codigo,
					"desde":            r[0],
					"hasta":            r[1],
					"porcentaje":       r[2],
				}), env.token)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}
	}

	parametros := map[string]any{}
	for _, campo := range []string{
		"humedad", "granosVerdes", "impurezas", "granosManchados",
		"hualcacho", "granosPelados", "granosYesosos", "vano",
	} {
		parametros[campo] = map[string]any{
			"disponible":         true,
			"tolerancia":         "15.00",
			"mostrar_tolerancia": true,
		}
	}
	plantillaResp := do(t, env.server, "POST", "/v1/plantillas",
		jsonBody(t, map[string]any{
			"nombre":         "Estandar E2E",
			"parametros":     parametros,
			"predeterminada": true,
		}), env.token)
	require.Equal(t, http.StatusCreated, plantillaResp.StatusCode)

	return productor.ID, tipo.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_RecepcionLiquidacionCompleta(t *testing.T) {
	env := setupTestEnv(t)
	productorID, tipoID := seedMaestros(t, env)

	recResp := do(t, env.server, "POST", "/v1/recepciones",
		jsonBody(t, map[string]any{
			"productor_id":  productorID,
			"tipo_arroz_id": tipoID,
			"peso_bruto":    "11000.00",
			"tara":          "1000.00",
			"mediciones": map[string]string{
				"humedad":   "15.30",
				"impurezas": "2.00",
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, recResp.StatusCode)
	var rec struct {
		ID       string `json:"ID"`
		Estado   string `json:"Estado"`
		PesoNeto string `json:"PesoNeto"`
	}
	decodeJSON(t, recResp, &rec)
	assert.Equal(t, "pendiente", rec.Estado)
	assert.Equal(t, "10000", rec.PesoNeto)

	// Recalculate without settling.
	recalcResp := do(t, env.server, "POST", "/v1/recepciones/"+rec.ID+"/recalcular", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusOK, recalcResp.StatusCode)
	var recalc struct {
		Resultado struct {
			DescuentoTotal string `json:"descuento_total"`
			PaddyNeto      string `json:"paddy_neto"`
		} `json:"resultado"`
	}
	decodeJSON(t, recalcResp, &recalc)
	assert.Equal(t, "100", recalc.Resultado.DescuentoTotal)
	assert.Equal(t, "9900", recalc.Resultado.PaddyNeto)

	// Settle.
	liqResp := do(t, env.server, "POST", "/v1/recepciones/"+rec.ID+"/liquidar", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusOK, liqResp.StatusCode)
	var liquidada struct {
		Estado    string `json:"Estado"`
		PaddyNeto string `json:"PaddyNeto"`
	}
	decodeJSON(t, liqResp, &liquidada)
	assert.Equal(t, "liquidada", liquidada.Estado)
	assert.Equal(t, "9900", liquidada.PaddyNeto)

	// A second settlement attempt hits the terminal state.
	again := do(t, env.server, "POST", "/v1/recepciones/"+rec.ID+"/liquidar", jsonBody(t, map[string]any{}), env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, again.StatusCode)
	again.Body.Close()

	// The LIQUIDACION ledger entry exists: 9900 kg × 450.
	txResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/transacciones?productor_id=%s&tipo=LIQUIDACION", productorID), nil, env.token)
	require.Equal(t, http.StatusOK, txResp.StatusCode)
	var txList struct {
		Items []struct {
			Monto string `json:"Monto"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, txResp, &txList)
	require.EqualValues(t, 1, txList.Total)
	assert.Equal(t, "4455000", txList.Items[0].Monto)
}

func TestE2E_RangoSolapadoRechazado(t *testing.T) {
	env := setupTestEnv(t)

	crear := func(desde, hasta string) *http.Response {
		return do(t, env.server, "POST", "/v1/descuentos/rangos",
			jsonBody(t, map[string]any{
				"codigo_categoria": 1,
				"desde":            desde,
				"hasta":            hasta,
				"porcentaje":       "1.00",
			}), env.token)
	}

	resp := crear("0.00", "15.00")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Intersecting interval → 409.
	resp = crear("14.00", "20.00")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Exact duplicate → 409.
	resp = crear("0.00", "15.00")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Adjacent interval is fine.
	resp = crear("15.01", "20.00")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_AnticipoConPagoIdempotente(t *testing.T) {
	env := setupTestEnv(t)
	productorID, _ := seedMaestros(t, env)

	resp := do(t, env.server, "POST", "/v1/transacciones/anticipo-con-pago",
		jsonBody(t, map[string]any{
			"productor_id": productorID,
			"monto":        "500000.00",
			"pago":         map[string]any{"medio": "transferencia"},
			"anticipo": map[string]any{
				"interes": map[string]any{
					"tasa_diaria":  "0.001",
					"fecha_inicio": "2026-01-01T00:00:00Z",
				},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var res struct {
		Anticipo   idResp `json:"Anticipo"`
		Pago       idResp `json:"Pago"`
		Referencia idResp `json:"Referencia"`
	}
	decodeJSON(t, resp, &res)
	require.NotEmpty(t, res.Anticipo.ID)
	require.NotEmpty(t, res.Pago.ID)
	require.NotEmpty(t, res.Referencia.ID)

	// The driver must surface duplicate inserts as gorm.ErrDuplicatedKey, or
	// the race recovery in the idempotent creation can never kick in.
	repo := repository.NewTransaccionRepository(env.db)
	dup := &model.TransaccionReferencia{
		Codigo:      "ANTICIPO",
		ProductorID: uuid.MustParse(productorID),
		PadreID:     uuid.MustParse(res.Anticipo.ID),
		HijaID:      uuid.MustParse(res.Pago.ID),
		TipoPadre:   "ANTICIPO",
	}
	dupErr := repo.CreateReferencia(context.Background(), dup)
	require.Error(t, dupErr)
	assert.True(t, errors.Is(dupErr, gorm.ErrDuplicatedKey))

	// Re-creating the same edge returns the surviving row.
	refResp := do(t, env.server, "POST", "/v1/transacciones/referencias",
		jsonBody(t, map[string]any{
			"codigo":       "ANTICIPO",
			"productor_id": productorID,
			"padre_id":     res.Anticipo.ID,
			"hija_id":      res.Pago.ID,
		}), env.token)
	require.Equal(t, http.StatusCreated, refResp.StatusCode)
	var ref idResp
	decodeJSON(t, refResp, &ref)
	assert.Equal(t, res.Referencia.ID, ref.ID)

	// Interest accrued to Jan 31: 500000 × 0.001 × 30.
	intResp := do(t, env.server, "GET",
		"/v1/transacciones/"+res.Anticipo.ID+"/interes?fecha=2026-01-31", nil, env.token)
	require.Equal(t, http.StatusOK, intResp.StatusCode)
	var interes struct {
		Monto string `json:"monto"`
	}
	decodeJSON(t, intResp, &interes)
	assert.Equal(t, "15000", interes.Monto)
}

func TestE2E_RecepcionAnulada(t *testing.T) {
	env := setupTestEnv(t)
	productorID, tipoID := seedMaestros(t, env)

	recResp := do(t, env.server, "POST", "/v1/recepciones",
		jsonBody(t, map[string]any{
			"productor_id":  productorID,
			"tipo_arroz_id": tipoID,
			"peso_bruto":    "5000.00",
			"tara":          "500.00",
			"mediciones":    map[string]string{"humedad": "14.00"},
		}), env.token)
	require.Equal(t, http.StatusCreated, recResp.StatusCode)
	var rec idResp
	decodeJSON(t, recResp, &rec)

	anularResp := do(t, env.server, "POST", "/v1/recepciones/"+rec.ID+"/anular",
		jsonBody(t, map[string]any{"motivo": "carga duplicada"}), env.token)
	require.Equal(t, http.StatusNoContent, anularResp.StatusCode)
	anularResp.Body.Close()

	// No settlement after cancellation and no ledger entry was written.
	liqResp := do(t, env.server, "POST", "/v1/recepciones/"+rec.ID+"/liquidar", jsonBody(t, map[string]any{}), env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, liqResp.StatusCode)
	liqResp.Body.Close()

	txResp := do(t, env.server, "GET", "/v1/transacciones?productor_id="+productorID, nil, env.token)
	require.Equal(t, http.StatusOK, txResp.StatusCode)
	var txList struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, txResp, &txList)
	assert.EqualValues(t, 0, txList.Total)
}
