package handler

import (
	"net/http"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlantillaHandler struct{ svc service.PlantillaService }

func NewPlantillaHandler(svc service.PlantillaService) *PlantillaHandler {
	return &PlantillaHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una plantilla de liquidacion
// @Tags plantillas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPlantillaRequest true "Plantilla"
// @Success 201 {object} model.Plantilla
// @Failure 400 {object} apierror.APIError
// @Router /v1/plantillas [post]
func (h *PlantillaHandler) Crear(c *gin.Context) {
	var req dto.CrearPlantillaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Listar godoc
// @Summary Lista todas las plantillas
// @Tags plantillas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Plantilla
// @Router /v1/plantillas [get]
func (h *PlantillaHandler) Listar(c *gin.Context) {
	plantillas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plantillas)
}

// Predeterminada godoc
// @Summary Obtiene la plantilla predeterminada
// @Tags plantillas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Plantilla
// @Failure 404 {object} apierror.APIError
// @Router /v1/plantillas/predeterminada [get]
func (h *PlantillaHandler) Predeterminada(c *gin.Context) {
	p, err := h.svc.Predeterminada(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Obtener godoc
// @Summary Obtiene una plantilla por ID
// @Tags plantillas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de plantilla"
// @Success 200 {object} model.Plantilla
// @Failure 404 {object} apierror.APIError
// @Router /v1/plantillas/{id} [get]
func (h *PlantillaHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	p, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Actualizar godoc
// @Summary Actualiza una plantilla existente
// @Tags plantillas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de plantilla"
// @Param body body dto.CrearPlantillaRequest true "Plantilla"
// @Success 200 {object} model.Plantilla
// @Failure 404 {object} apierror.APIError
// @Router /v1/plantillas/{id} [put]
func (h *PlantillaHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CrearPlantillaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SetPredeterminada godoc
// @Summary Marca una plantilla como predeterminada
// @Tags plantillas
// @Security BearerAuth
// @Param id path string true "ID de plantilla"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/plantillas/{id}/predeterminada [put]
func (h *PlantillaHandler) SetPredeterminada(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.SetPredeterminada(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Eliminar godoc
// @Summary Elimina una plantilla (no puede ser la predeterminada)
// @Tags plantillas
// @Security BearerAuth
// @Param id path string true "ID de plantilla"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/plantillas/{id} [delete]
func (h *PlantillaHandler) Eliminar(c *gin.Context) {
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
