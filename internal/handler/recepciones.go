package handler

import (
	"net/http"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/middleware"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"
	"github.com/fchandiac/paddy-backend-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RecepcionHandler struct {
	svc        service.RecepcionService
	dispatcher *worker.Dispatcher
}

func NewRecepcionHandler(svc service.RecepcionService, dispatcher *worker.Dispatcher) *RecepcionHandler {
	return &RecepcionHandler{svc: svc, dispatcher: dispatcher}
}

// Crear godoc
// @Summary Registra una recepcion de paddy
// @Tags recepciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearRecepcionRequest true "Recepcion"
// @Success 201 {object} model.Recepcion
// @Failure 422 {object} apierror.APIError
// @Router /v1/recepciones [post]
func (h *RecepcionHandler) Crear(c *gin.Context) {
	var req dto.CrearRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rec, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Listar godoc
// @Summary Lista recepciones filtradas y paginadas
// @Tags recepciones
// @Produce json
// @Security BearerAuth
// @Param productor_id query string false "UUID del productor"
// @Param tipo_arroz_id query string false "UUID del tipo de arroz"
// @Param estado query string false "pendiente | liquidada | anulada"
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /v1/recepciones [get]
func (h *RecepcionHandler) Listar(c *gin.Context) {
	var filter dto.RecepcionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Fecha desde invalida, use YYYY-MM-DD"))
			return
		}
		filter.Desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Fecha hasta invalida, use YYYY-MM-DD"))
			return
		}
		filter.Hasta = &t
	}
	recepciones, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": recepciones, "total": total})
}

// Obtener godoc
// @Summary Obtiene una recepcion por ID
// @Tags recepciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de recepcion"
// @Success 200 {object} model.Recepcion
// @Failure 404 {object} apierror.APIError
// @Router /v1/recepciones/{id} [get]
func (h *RecepcionHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	rec, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Recalcular godoc
// @Summary Recalcula los totales de liquidacion de una recepcion pendiente
// @Tags recepciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de recepcion"
// @Success 200 {object} service.ResultadoLiquidacion
// @Failure 422 {object} apierror.APIError
// @Router /v1/recepciones/{id}/recalcular [post]
func (h *RecepcionHandler) Recalcular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	rec, resultado, err := h.svc.Recalcular(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recepcion": rec, "resultado": resultado})
}

// Liquidar godoc
// @Summary Liquida una recepcion y registra la transaccion LIQUIDACION
// @Tags recepciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de recepcion"
// @Success 200 {object} model.Recepcion
// @Failure 422 {object} apierror.APIError
// @Router /v1/recepciones/{id}/liquidar [post]
func (h *RecepcionHandler) Liquidar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	rec, err := h.svc.Liquidar(c.Request.Context(), id, usuarioID)
	if err != nil {
		// La recepcion puede haber quedado liquidada con el asiento pendiente;
		// se devuelve junto al error para que el cliente pueda reintentar.
		if rec != nil {
			c.JSON(http.StatusAccepted, gin.H{"recepcion": rec, "error": err.Error()})
			return
		}
		writeServiceError(c, err)
		return
	}

	// Settlement sheet goes out by email when the producer has one on file.
	if rec.Productor != nil && rec.Productor.Email != nil && *rec.Productor.Email != "" {
		if err := h.dispatcher.EnqueueEmail(c.Request.Context(), worker.LiquidacionEmailPayload{
			RecepcionID: rec.ID.String(),
			ToEmail:     *rec.Productor.Email,
		}); err != nil {
			log.Error().Err(err).Str("recepcion_id", rec.ID.String()).Msg("no se pudo encolar el correo de liquidacion")
		}
	}

	c.JSON(http.StatusOK, rec)
}

// Anular godoc
// @Summary Anula una recepcion pendiente
// @Tags recepciones
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID de recepcion"
// @Success 204
// @Failure 422 {object} apierror.APIError
// @Router /v1/recepciones/{id}/anular [post]
func (h *RecepcionHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var body struct {
		Motivo string `json:"motivo"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.svc.Anular(c.Request.Context(), id, body.Motivo); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
