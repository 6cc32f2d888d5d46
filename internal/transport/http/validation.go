package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Lets numeric tags such as gt=0 apply to decimal.Decimal fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// price accepts finite, non-negative decimal strings such as "99.90".
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})

	// Report fields by their JSON or query names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bindJSON binds and validates the request body. On failure it writes the
// 400 response and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos de entrada inválidos", CodeValidation,
			[]FieldError{{Field: "body", Message: err.Error()}})
		return false
	}
	return check(c, req, "Datos de entrada inválidos")
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Parámetros de consulta inválidos", CodeValidation,
			[]FieldError{{Field: "query", Message: err.Error()}})
		return false
	}
	return check(c, req, "Parámetros de consulta inválidos")
}

func check(c *gin.Context, req interface{}, msg string) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		abortWithError(c, http.StatusBadRequest, msg, CodeValidation, []FieldError{{Field: "general", Message: err.Error()}})
		return false
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	abortWithError(c, http.StatusBadRequest, msg, CodeValidation, details)
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s debe ser como máximo %s", fe.Field(), fe.Param())
	case "price":
		return fmt.Sprintf("%s debe ser un número mayor o igual a 0", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", fe.Field(), fe.Tag())
	}
}
