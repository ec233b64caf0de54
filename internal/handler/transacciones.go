package handler

import (
	"net/http"
	"time"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/middleware"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransaccionHandler struct{ svc service.TransaccionService }

func NewTransaccionHandler(svc service.TransaccionService) *TransaccionHandler {
	return &TransaccionHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una transaccion en la cuenta corriente del productor
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTransaccionRequest true "Transaccion"
// @Success 201 {object} model.Transaccion
// @Failure 422 {object} apierror.APIError
// @Router /v1/transacciones [post]
func (h *TransaccionHandler) Crear(c *gin.Context) {
	var req dto.CrearTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	t, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Listar godoc
// @Summary Lista transacciones filtradas y paginadas
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param productor_id query string false "UUID del productor"
// @Param tipo query string false "Tipo de transaccion"
// @Param temporada_id query string false "UUID de temporada"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /v1/transacciones [get]
func (h *TransaccionHandler) Listar(c *gin.Context) {
	var filter dto.TransaccionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	transacciones, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": transacciones, "total": total})
}

// Obtener godoc
// @Summary Obtiene una transaccion por ID
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de transaccion"
// @Success 200 {object} model.Transaccion
// @Failure 404 {object} apierror.APIError
// @Router /v1/transacciones/{id} [get]
func (h *TransaccionHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	t, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Eliminar godoc
// @Summary Elimina (soft delete) una transaccion
// @Tags transacciones
// @Security BearerAuth
// @Param id path string true "ID de transaccion"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/transacciones/{id} [delete]
func (h *TransaccionHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearReferencia godoc
// @Summary Vincula dos transacciones (padre → hija). Idempotente.
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearReferenciaRequest true "Referencia"
// @Success 201 {object} model.TransaccionReferencia
// @Failure 422 {object} apierror.APIError
// @Router /v1/transacciones/referencias [post]
func (h *TransaccionHandler) CrearReferencia(c *gin.Context) {
	var req dto.CrearReferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ref, err := h.svc.CrearReferencia(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ref)
}

// ReferenciasPorPadre godoc
// @Summary Lista las referencias donde la transaccion es padre
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de transaccion padre"
// @Success 200 {array} model.TransaccionReferencia
// @Router /v1/transacciones/{id}/referencias/hijas [get]
func (h *TransaccionHandler) ReferenciasPorPadre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	refs, err := h.svc.ReferenciasPorPadre(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// ReferenciasPorHija godoc
// @Summary Lista las referencias donde la transaccion es hija
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de transaccion hija"
// @Success 200 {array} model.TransaccionReferencia
// @Router /v1/transacciones/{id}/referencias/padres [get]
func (h *TransaccionHandler) ReferenciasPorHija(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	refs, err := h.svc.ReferenciasPorHija(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// AnticipoConPago godoc
// @Summary Crea un anticipo con su pago asociado y los vincula
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AnticipoConPagoRequest true "Anticipo con pago"
// @Success 201 {object} service.AnticipoConPagoResultado
// @Failure 422 {object} apierror.APIError
// @Router /v1/transacciones/anticipo-con-pago [post]
func (h *TransaccionHandler) AnticipoConPago(c *gin.Context) {
	var req dto.AnticipoConPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	res, err := h.svc.CrearAnticipoConPago(c.Request.Context(), usuarioID, req)
	if err != nil {
		// Con filas parciales se responde 202: el cliente reintenta solo el
		// paso que falto usando los IDs devueltos.
		if res != nil && (res.Anticipo != nil || res.Pago != nil) {
			c.JSON(http.StatusAccepted, gin.H{"resultado": res, "error": err.Error()})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// InteresAnticipo godoc
// @Summary Calcula el interes devengado de un anticipo a una fecha
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del anticipo"
// @Param fecha query string false "Fecha de corte YYYY-MM-DD (default: hoy)"
// @Success 200 {object} dto.InteresResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/transacciones/{id}/interes [get]
func (h *TransaccionHandler) InteresAnticipo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	fechaRef := time.Now().UTC()
	if v := c.Query("fecha"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, use YYYY-MM-DD"))
			return
		}
		fechaRef = t
	}
	anticipo, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	monto, err := h.svc.CalcularInteresAnticipo(anticipo, fechaRef)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InteresResponse{
		TransaccionID: anticipo.ID.String(),
		Monto:         monto,
	})
}
