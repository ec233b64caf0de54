package worker

// interes_cron.go
// Background goroutine that periodically accrues interest on outstanding
// advances. Each tick lists ANTICIPO rows carrying an interest config and
// generates the INTERES transaction for the day; the reference key makes the
// generation idempotent, so overlapping ticks never double-charge.

import (
	"context"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/repository"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InteresCronConfig holds all dependencies for the accrual goroutine.
type InteresCronConfig struct {
	TransaccionSvc  service.TransaccionService
	TransaccionRepo repository.TransaccionRepository
	// UsuarioSistema is the user the generated INTERES rows are attributed to.
	UsuarioSistema uuid.UUID
	Tick           time.Duration
}

// StartInteresCron launches a background goroutine that ticks on cfg.Tick,
// queries advances with interest configured, and accrues through the service.
// It respects the context for graceful shutdown.
func StartInteresCron(ctx context.Context, cfg InteresCronConfig) {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Hour
	}
	go func() {
		ticker := time.NewTicker(cfg.Tick)
		defer ticker.Stop()

		log.Info().Dur("tick", cfg.Tick).Msg("interes_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("interes_cron: shutting down")
				return
			case <-ticker.C:
				processAcumulaciones(ctx, cfg)
			}
		}
	}()
}

func processAcumulaciones(ctx context.Context, cfg InteresCronConfig) {
	corte := time.Now().UTC()

	anticipos, err := cfg.TransaccionRepo.ListAnticiposConInteres(ctx, corte)
	if err != nil {
		log.Error().Err(err).Msg("interes_cron: failed to query advances")
		return
	}
	if len(anticipos) == 0 {
		return
	}

	log.Info().Int("count", len(anticipos)).Msg("interes_cron: accruing interest")

	for i := range anticipos {
		anticipo := &anticipos[i]

		interes, err := cfg.TransaccionSvc.GenerarTransaccionInteres(ctx, anticipo.ID, corte, cfg.UsuarioSistema)
		if err != nil {
			log.Error().
				Err(err).
				Str("anticipo_id", anticipo.ID.String()).
				Msg("interes_cron: accrual failed")
			continue
		}
		if interes == nil {
			// Zero accrual for the day — nothing to record.
			continue
		}
		log.Info().
			Str("anticipo_id", anticipo.ID.String()).
			Str("interes_id", interes.ID.String()).
			Str("monto", interes.Monto.StringFixed(2)).
			Msg("interes_cron: interest recorded")
	}
}
