package worker

// email_worker.go
// Processes settlement email jobs from QueueEmail: regenerates the settlement
// sheet PDF for a settled reception and mails it to the producer. SMTP calls
// go through the circuit breaker so a downed relay does not stall the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fchandiac/paddy-backend-sub000/internal/infra"
	"github.com/fchandiac/paddy-backend-sub000/internal/repository"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LiquidacionEmailPayload is the job envelope sent to QueueEmail.
type LiquidacionEmailPayload struct {
	RecepcionID string `json:"recepcion_id"`
	ToEmail     string `json:"to_email"`
}

// EmailWorker regenerates the settlement PDF and sends it via SMTP.
type EmailWorker struct {
	recepcionRepo  repository.RecepcionRepository
	plantillaRepo  repository.PlantillaRepository
	liquidacionSvc service.LiquidacionService
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	storagePath    string
}

func NewEmailWorker(
	recepcionRepo repository.RecepcionRepository,
	plantillaRepo repository.PlantillaRepository,
	liquidacionSvc service.LiquidacionService,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	storagePath string,
) *EmailWorker {
	return &EmailWorker{
		recepcionRepo:  recepcionRepo,
		plantillaRepo:  plantillaRepo,
		liquidacionSvc: liquidacionSvc,
		mailer:         mailer,
		cb:             cb,
		storagePath:    storagePath,
	}
}

// Process generates the settlement PDF and emails it with the sheet attached.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload LiquidacionEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	id, err := uuid.Parse(payload.RecepcionID)
	if err != nil {
		log.Error().Str("recepcion_id", payload.RecepcionID).Msg("email_worker: bad recepcion_id")
		return nil
	}

	rec, err := w.recepcionRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("email_worker: load recepcion: %w", err)
	}
	if rec.PlantillaID == nil {
		log.Warn().Str("recepcion_id", payload.RecepcionID).Msg("email_worker: recepcion sin plantilla — skipping")
		return nil
	}
	plantilla, err := w.plantillaRepo.FindByID(ctx, *rec.PlantillaID)
	if err != nil {
		return fmt.Errorf("email_worker: load plantilla: %w", err)
	}

	resultado, err := w.liquidacionSvc.Calcular(ctx, rec, plantilla)
	if err != nil {
		return fmt.Errorf("email_worker: calcular liquidacion: %w", err)
	}

	pdfPath, err := infra.GenerateLiquidacionPDF(rec, resultado, w.storagePath)
	if err != nil {
		return fmt.Errorf("email_worker: generate pdf: %w", err)
	}

	subject := "Liquidacion de paddy"
	if rec.Productor != nil {
		subject = fmt.Sprintf("Liquidacion de paddy — %s", rec.Productor.RazonSocial)
	}
	body := fmt.Sprintf("Se adjunta la liquidacion de la recepcion %s por %s kg de paddy neto.",
		rec.ID, rec.PaddyNeto.StringFixed(2))

	if err := w.cb.Execute(func() error {
		return w.mailer.SendLiquidacion(payload.ToEmail, subject, body, pdfPath)
	}); err != nil {
		return fmt.Errorf("email_worker: send: %w", err)
	}

	log.Info().Str("to", payload.ToEmail).Str("recepcion_id", payload.RecepcionID).
		Msg("email_worker: liquidacion sent")
	return nil
}
