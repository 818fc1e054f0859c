package handler

import (
	"errors"
	"net/http"
	"reflect"

	"dayflow/internal/apierror"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
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

// bindAndValidate binds a form or JSON body and runs go-playground/validator
// tags. Returns false and writes the error response if binding fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid request: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var msgs []string
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fe.Field()+" failed rule "+fe.Tag())
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(msgs))
		return false
	}
	return true
}

// respondServiceError maps domain errors to HTTP responses. Anything
// unrecognized is an opaque storage failure: logged server-side, generic
// "try again" to the client.
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(ve.Violations))
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrLeaveNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrNoCheckInFound),
		errors.Is(err, service.ErrAlreadyCheckedOut),
		errors.Is(err, service.ErrLeaveAlreadyDecided),
		errors.Is(err, service.ErrPayrollOrdering),
		errors.Is(err, service.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("service error")
		c.JSON(http.StatusInternalServerError, apierror.New("Something went wrong. Please try again."))
	}
}
