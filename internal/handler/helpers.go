package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/mattygrunge/planproduccion/internal/apierror"
	"github.com/mattygrunge/planproduccion/internal/middleware"
	"github.com/mattygrunge/planproduccion/internal/service"

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

// parseID reads the :id path param as an unsigned integer.
// Writes the 400 response itself when the param is not a valid id.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// clientInfo extracts the acting user and request metadata for audit entries.
func clientInfo(c *gin.Context) service.ClientInfo {
	info := service.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims, ok := c.Get(middleware.ClaimsKey); ok {
		if jc, ok := claims.(*middleware.JWTClaims); ok {
			uid := jc.UserID
			info.UsuarioID = &uid
			info.Username = jc.Username
		}
	}
	return info
}

// respondError maps service sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrSectorNoEncontrado),
		errors.Is(err, service.ErrLineaNoEncontrada),
		errors.Is(err, service.ErrClienteNoEncontrado),
		errors.Is(err, service.ErrLoteNoEncontrado),
		errors.Is(err, service.ErrEstadoLineaNoEncontrado),
		errors.Is(err, service.ErrUsuarioNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrEstadoLineaNoProduccion),
		errors.Is(err, service.ErrTipoEstadoInvalido),
		errors.Is(err, service.ErrFechaInvalida),
		errors.Is(err, service.ErrFechaHoraInvalida),
		errors.Is(err, service.ErrRangoFechasInvalido),
		errors.Is(err, service.ErrOrdenInvalido),
		errors.Is(err, service.ErrUsernameEnUso):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConflictoCodigo):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas),
		errors.Is(err, service.ErrTokenInvalido):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
