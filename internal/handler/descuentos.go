package handler

import (
	"net/http"
	"strconv"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DescuentoHandler struct{ svc service.DescuentoService }

func NewDescuentoHandler(svc service.DescuentoService) *DescuentoHandler {
	return &DescuentoHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un rango de descuento para una categoria
// @Tags descuentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearRangoRequest true "Rango de descuento"
// @Success 201 {object} model.RangoDescuento
// @Failure 409 {object} apierror.APIError
// @Router /v1/descuentos/rangos [post]
func (h *DescuentoHandler) Crear(c *gin.Context) {
	var req dto.CrearRangoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rango, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rango)
}

// Listar godoc
// @Summary Lista los rangos de una categoria ordenados por desde
// @Tags descuentos
// @Produce json
// @Security BearerAuth
// @Param codigo path int true "Codigo de categoria (1-8)"
// @Success 200 {array} model.RangoDescuento
// @Router /v1/descuentos/categorias/{codigo}/rangos [get]
func (h *DescuentoHandler) Listar(c *gin.Context) {
	codigo, err := strconv.Atoi(c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Codigo de categoria invalido"))
		return
	}
	rangos, err := h.svc.Listar(c.Request.Context(), codigo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rangos)
}

// Resolver godoc
// @Summary Resuelve el porcentaje de descuento para un valor medido
// @Tags descuentos
// @Produce json
// @Security BearerAuth
// @Param codigo path int true "Codigo de categoria (1-8)"
// @Param valor query string true "Valor medido"
// @Success 200 {object} dto.ResolverResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/descuentos/categorias/{codigo}/resolver [get]
func (h *DescuentoHandler) Resolver(c *gin.Context) {
	codigo, err := strconv.Atoi(c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Codigo de categoria invalido"))
		return
	}
	valor, err := decimal.NewFromString(c.Query("valor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Valor invalido"))
		return
	}
	pct, err := h.svc.Resolver(c.Request.Context(), codigo, valor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResolverResponse{
		CodigoCategoria: codigo,
		Valor:           valor,
		Porcentaje:      pct,
	})
}

// Actualizar godoc
// @Summary Actualiza los limites o el porcentaje de un rango
// @Tags descuentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del rango"
// @Param body body dto.ActualizarRangoRequest true "Nuevos valores"
// @Success 200 {object} model.RangoDescuento
// @Failure 409 {object} apierror.APIError
// @Router /v1/descuentos/rangos/{id} [put]
func (h *DescuentoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarRangoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rango, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rango)
}

// Eliminar godoc
// @Summary Elimina (soft delete) un rango de descuento
// @Tags descuentos
// @Security BearerAuth
// @Param id path string true "ID del rango"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/descuentos/rangos/{id} [delete]
func (h *DescuentoHandler) Eliminar(c *gin.Context) {
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
