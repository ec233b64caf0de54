package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/config"
	"github.com/fchandiac/paddy-backend-sub000/internal/infra"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"
	"github.com/fchandiac/paddy-backend-sub000/internal/router"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"
	"github.com/fchandiac/paddy-backend-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background machinery: email worker pool and interest accrual cron.
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	recepcionRepo := repository.NewRecepcionRepository(db)
	plantillaRepo := repository.NewPlantillaRepository(db)
	rangoRepo := repository.NewRangoDescuentoRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)
	productorRepo := repository.NewProductorRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	liquidacionSvc := service.NewLiquidacionService(service.NewDescuentoService(rangoRepo))
	transaccionSvc := service.NewTransaccionService(transaccionRepo, productorRepo)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		worker.QueueEmail: worker.NewEmailWorker(
			recepcionRepo, plantillaRepo, liquidacionSvc, mailer, smtpCB, cfg.PDFStoragePath,
		),
	})

	// The accrual cron attributes generated INTERES rows to the seed admin.
	usuarioSistema := uuid.Nil
	if admin, err := usuarioRepo.FindByUsername(ctx, "admin"); err == nil {
		usuarioSistema = admin.ID
	} else {
		log.Warn().Msg("usuario admin no encontrado; interes_cron deshabilitado")
	}
	if usuarioSistema != uuid.Nil {
		worker.StartInteresCron(ctx, worker.InteresCronConfig{
			TransaccionSvc:  transaccionSvc,
			TransaccionRepo: transaccionRepo,
			UsuarioSistema:  usuarioSistema,
			Tick:            time.Duration(cfg.InteresTickMinutes) * time.Minute,
		})
	}

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("paddy backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
