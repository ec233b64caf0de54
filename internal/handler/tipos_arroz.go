package handler

import (
	"net/http"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TipoArrozHandler struct{ svc service.TipoArrozService }

func NewTipoArrozHandler(svc service.TipoArrozService) *TipoArrozHandler {
	return &TipoArrozHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un tipo de arroz
// @Tags tipos-arroz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTipoArrozRequest true "Tipo de arroz"
// @Success 201 {object} model.TipoArroz
// @Router /v1/tipos-arroz [post]
func (h *TipoArrozHandler) Crear(c *gin.Context) {
	var req dto.CrearTipoArrozRequest
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
// @Summary Lista tipos de arroz
// @Tags tipos-arroz
// @Produce json
// @Security BearerAuth
// @Param habilitados query bool false "Solo habilitados"
// @Success 200 {array} model.TipoArroz
// @Router /v1/tipos-arroz [get]
func (h *TipoArrozHandler) Listar(c *gin.Context) {
	soloHabilitados := c.Query("habilitados") == "true"
	tipos, err := h.svc.Listar(c.Request.Context(), soloHabilitados)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tipos)
}

// Actualizar godoc
// @Summary Actualiza un tipo de arroz (nombre, precio, habilitado)
// @Tags tipos-arroz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del tipo"
// @Param body body dto.ActualizarTipoArrozRequest true "Datos a actualizar"
// @Success 200 {object} model.TipoArroz
// @Failure 404 {object} apierror.APIError
// @Router /v1/tipos-arroz/{id} [put]
func (h *TipoArrozHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarTipoArrozRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Eliminar godoc
// @Summary Elimina (soft delete) un tipo de arroz
// @Tags tipos-arroz
// @Security BearerAuth
// @Param id path string true "ID del tipo"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/tipos-arroz/{id} [delete]
func (h *TipoArrozHandler) Eliminar(c *gin.Context) {
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
