package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/fchandiac/paddy-backend-sub000/internal/apierror"
	"github.com/fchandiac/paddy-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// writeServiceError maps a service layer error to the matching HTTP status.
// Typed errors carry their own status; anything unrecognized is a 400 so
// callers never leak a raw 500 for ordinary business failures.
func writeServiceError(c *gin.Context, err error) {
	var (
		solapado     *service.ErrRangoSolapado
		sinRango     *service.ErrSinRangoDescuento
		integridad   *service.ErrViolacionIntegridad
		incompleta   *service.ErrPlantillaIncompleta
		noConfig     *service.ErrDescuentoNoConfigurado
		detalleInval *service.ErrDetalleInvalido
	)
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrRangoDuplicado), errors.As(err, &solapado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrRangoInvalido),
		errors.Is(err, service.ErrEstadoRecepcion),
		errors.As(err, &sinRango),
		errors.As(err, &incompleta),
		errors.As(err, &noConfig),
		errors.As(err, &detalleInval):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &integridad):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}
