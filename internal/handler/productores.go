package handler

import (
	"net/http"
	"strconv"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/dto"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductorHandler struct{ svc service.ProductorService }

func NewProductorHandler(svc service.ProductorService) *ProductorHandler {
	return &ProductorHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un productor
// @Tags productores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductorRequest true "Productor"
// @Success 201 {object} model.Productor
// @Failure 400 {object} apierror.APIError
// @Router /v1/productores [post]
func (h *ProductorHandler) Crear(c *gin.Context) {
	var req dto.CrearProductorRequest
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
// @Summary Lista productores con busqueda por rut o razon social
// @Tags productores
// @Produce json
// @Security BearerAuth
// @Param q query string false "Texto de busqueda"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /v1/productores [get]
func (h *ProductorHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	productores, total, err := h.svc.Listar(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": productores, "total": total})
}

// Obtener godoc
// @Summary Obtiene un productor por ID
// @Tags productores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del productor"
// @Success 200 {object} model.Productor
// @Failure 404 {object} apierror.APIError
// @Router /v1/productores/{id} [get]
func (h *ProductorHandler) Obtener(c *gin.Context) {
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
// @Summary Actualiza los datos de un productor
// @Tags productores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del productor"
// @Param body body dto.ActualizarProductorRequest true "Datos a actualizar"
// @Success 200 {object} model.Productor
// @Failure 404 {object} apierror.APIError
// @Router /v1/productores/{id} [put]
func (h *ProductorHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarProductorRequest
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

// Eliminar godoc
// @Summary Elimina (soft delete) un productor
// @Tags productores
// @Security BearerAuth
// @Param id path string true "ID del productor"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/productores/{id} [delete]
func (h *ProductorHandler) Eliminar(c *gin.Context) {
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
