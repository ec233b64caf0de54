package handler

import (
	"net/http"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TemporadaHandler struct{ svc service.TemporadaService }

func NewTemporadaHandler(svc service.TemporadaService) *TemporadaHandler {
	return &TemporadaHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una temporada de compra
// @Tags temporadas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTemporadaRequest true "Temporada"
// @Success 201 {object} model.Temporada
// @Router /v1/temporadas [post]
func (h *TemporadaHandler) Crear(c *gin.Context) {
	var req dto.CrearTemporadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Listar godoc
// @Summary Lista las temporadas mas recientes primero
// @Tags temporadas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Temporada
// @Router /v1/temporadas [get]
func (h *TemporadaHandler) Listar(c *gin.Context) {
	temporadas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, temporadas)
}

// Activa godoc
// @Summary Obtiene la temporada activa
// @Tags temporadas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Temporada
// @Failure 404 {object} apierror.APIError
// @Router /v1/temporadas/activa [get]
func (h *TemporadaHandler) Activa(c *gin.Context) {
	t, err := h.svc.ObtenerActiva(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Cerrar godoc
// @Summary Cierra una temporada fijando su fecha de fin
// @Tags temporadas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de temporada"
// @Param body body dto.CerrarTemporadaRequest true "Fecha de cierre"
// @Success 200 {object} model.Temporada
// @Failure 404 {object} apierror.APIError
// @Router /v1/temporadas/{id}/cerrar [post]
func (h *TemporadaHandler) Cerrar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CerrarTemporadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
