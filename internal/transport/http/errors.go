package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// Error codes carried in APIError.Code.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidProductID    = "INVALID_PRODUCT_ID"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInvalidSpecialPrice = "INVALID_SPECIAL_PRICE"
	CodeDuplicate           = "DUPLICADO"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensaje"`
}

// APIError is the envelope of every 4xx/5xx response.
type APIError struct {
	Error     string       `json:"error"`
	Code      string       `json:"codigo,omitempty"`
	Details   []FieldError `json:"detalles,omitempty"`
	Timestamp string       `json:"timestamp"`
}

func newAPIError(msg, code string, details []FieldError) APIError {
	return APIError{
		Error:     msg,
		Code:      code,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func abortWithError(c *gin.Context, status int, msg, code string, details []FieldError) {
	c.AbortWithStatusJSON(status, newAPIError(msg, code, details))
}

// writeError maps a use case error onto the HTTP status and envelope.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProductID):
		abortWithError(c, http.StatusBadRequest, "ID de producto inválido", CodeInvalidProductID, nil)

	case errors.Is(err, domain.ErrProductNotFound):
		abortWithError(c, http.StatusNotFound, "Producto no encontrado", CodeProductNotFound, nil)

	case errors.Is(err, domain.ErrInvalidSpecialPrice):
		abortWithError(c, http.StatusBadRequest, "El precio especial debe ser menor al precio base", CodeInvalidSpecialPrice, nil)

	case domain.IsValidationError(err):
		abortWithError(c, http.StatusBadRequest, "Datos de entrada inválidos", CodeValidation,
			[]FieldError{{Field: "general", Message: err.Error()}})

	case errors.Is(err, domain.ErrDuplicateRecord):
		abortWithError(c, http.StatusConflict, "Ya existe un registro con estos datos", CodeDuplicate, nil)

	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("store unavailable")
		abortWithError(c, http.StatusServiceUnavailable, "Servicio de datos no disponible", CodeStoreUnavailable, nil)

	default:
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("unhandled error")
		abortWithError(c, http.StatusInternalServerError, "Error interno del servidor", CodeInternal, nil)
	}
}
