package router

import (
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/config"
	"github.com/fchandiac/paddy-backend-sub000/internal/handler"
	"github.com/fchandiac/paddy-backend-sub000/internal/middleware"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"
	"github.com/fchandiac/paddy-backend-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productorRepo := repository.NewProductorRepository(db)
	tipoArrozRepo := repository.NewTipoArrozRepository(db)
	temporadaRepo := repository.NewTemporadaRepository(db)
	rangoRepo := repository.NewRangoDescuentoRepository(db)
	plantillaRepo := repository.NewPlantillaRepository(db)
	recepcionRepo := repository.NewRecepcionRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productorSvc := service.NewProductorService(productorRepo)
	tipoArrozSvc := service.NewTipoArrozService(tipoArrozRepo)
	temporadaSvc := service.NewTemporadaService(temporadaRepo)
	descuentoSvc := service.NewDescuentoService(rangoRepo)
	plantillaSvc := service.NewPlantillaService(plantillaRepo)
	liquidacionSvc := service.NewLiquidacionService(descuentoSvc)
	transaccionSvc := service.NewTransaccionService(transaccionRepo, productorRepo)
	recepcionSvc := service.NewRecepcionService(
		recepcionRepo, plantillaRepo, productorRepo, tipoArrozRepo,
		liquidacionSvc, transaccionSvc,
	)

	// Worker dispatcher — handlers enqueue async jobs through it
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productoresH := handler.NewProductorHandler(productorSvc)
	tiposArrozH := handler.NewTipoArrozHandler(tipoArrozSvc)
	temporadasH := handler.NewTemporadaHandler(temporadaSvc)
	descuentosH := handler.NewDescuentoHandler(descuentoSvc)
	plantillasH := handler.NewPlantillaHandler(plantillaSvc)
	recepcionesH := handler.NewRecepcionHandler(recepcionSvc, dispatcher)
	transaccionesH := handler.NewTransaccionHandler(transaccionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, contador, administrador — declared per-endpoint
		todos := middleware.RequireRole("operador", "contador", "administrador")
		contables := middleware.RequireRole("contador", "administrador")
		admin := middleware.RequireRole("administrador")

		// Recepciones — operators register, accountants settle
		v1.POST("/recepciones", todos, recepcionesH.Crear)
		v1.GET("/recepciones", todos, recepcionesH.Listar)
		v1.GET("/recepciones/:id", todos, recepcionesH.Obtener)
		v1.POST("/recepciones/:id/recalcular", todos, recepcionesH.Recalcular)
		v1.POST("/recepciones/:id/liquidar", contables, recepcionesH.Liquidar)
		v1.POST("/recepciones/:id/anular", contables, recepcionesH.Anular)

		// Transacciones — cuenta corriente del productor
		v1.GET("/transacciones", todos, transaccionesH.Listar)
		v1.GET("/transacciones/:id", todos, transaccionesH.Obtener)
		v1.GET("/transacciones/:id/interes", contables, transaccionesH.InteresAnticipo)
		v1.GET("/transacciones/:id/referencias/hijas", todos, transaccionesH.ReferenciasPorPadre)
		v1.GET("/transacciones/:id/referencias/padres", todos, transaccionesH.ReferenciasPorHija)
		v1.POST("/transacciones", contables, transaccionesH.Crear)
		v1.POST("/transacciones/referencias", contables, transaccionesH.CrearReferencia)
		v1.POST("/transacciones/anticipo-con-pago", contables, transaccionesH.AnticipoConPago)
		v1.DELETE("/transacciones/:id", admin, transaccionesH.Eliminar)

		// Descuentos — read for all, writes for administrador
		v1.GET("/descuentos/categorias/:codigo/rangos", todos, descuentosH.Listar)
		v1.GET("/descuentos/categorias/:codigo/resolver", todos, descuentosH.Resolver)
		descuentos := v1.Group("/descuentos", admin)
		{
			descuentos.POST("/rangos", descuentosH.Crear)
			descuentos.PUT("/rangos/:id", descuentosH.Actualizar)
			descuentos.DELETE("/rangos/:id", descuentosH.Eliminar)
		}

		// Plantillas — read for all, writes for administrador
		v1.GET("/plantillas", todos, plantillasH.Listar)
		v1.GET("/plantillas/predeterminada", todos, plantillasH.Predeterminada)
		v1.GET("/plantillas/:id", todos, plantillasH.Obtener)
		plantillas := v1.Group("/plantillas", admin)
		{
			plantillas.POST("", plantillasH.Crear)
			plantillas.PUT("/:id", plantillasH.Actualizar)
			plantillas.PUT("/:id/predeterminada", plantillasH.SetPredeterminada)
			plantillas.DELETE("/:id", plantillasH.Eliminar)
		}

		// Productores
		v1.GET("/productores", todos, productoresH.Listar)
		v1.GET("/productores/:id", todos, productoresH.Obtener)
		productores := v1.Group("/productores", contables)
		{
			productores.POST("", productoresH.Crear)
			productores.PUT("/:id", productoresH.Actualizar)
			productores.DELETE("/:id", productoresH.Eliminar)
		}

		// Tipos de arroz
		v1.GET("/tipos-arroz", todos, tiposArrozH.Listar)
		tiposArroz := v1.Group("/tipos-arroz", admin)
		{
			tiposArroz.POST("", tiposArrozH.Crear)
			tiposArroz.PUT("/:id", tiposArrozH.Actualizar)
			tiposArroz.DELETE("/:id", tiposArrozH.Eliminar)
		}

		// Temporadas
		v1.GET("/temporadas", todos, temporadasH.Listar)
		v1.GET("/temporadas/activa", todos, temporadasH.Activa)
		temporadas := v1.Group("/temporadas", admin)
		{
			temporadas.POST("", temporadasH.Crear)
			temporadas.POST("/:id/cerrar", temporadasH.Cerrar)
		}

		// Usuarios
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
