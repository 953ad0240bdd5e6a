package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tasksift/internal/api/shared"
	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/export"
)

// ErrMalformedRequest is returned when the request body is not valid JSON for
// the endpoint.
var ErrMalformedRequest = errors.New("malformed request")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, ErrMalformedRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, export.ErrUnknownFormat),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "error inesperado"
	}

	var maxBytesErr *http.MaxBytesError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &maxBytesErr):
		return "el cuerpo de la petición es demasiado grande"
	case errors.Is(err, shared.ErrEmptyBody):
		return "el cuerpo de la petición está vacío"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrInvalidDate):
		return "fecha inválida, se espera AAAA-MM-DD"
	case errors.Is(err, domain.ErrEmptyTitle):
		return "el título es obligatorio"
	case errors.Is(err, export.ErrUnknownFormat):
		return "formato de exportación no soportado"
	case errors.Is(err, ErrMalformedRequest):
		return "formato de petición inválido"
	case errors.Is(err, domain.ErrValidation):
		return "petición inválida"
	case errors.Is(err, context.DeadlineExceeded):
		return "tiempo de espera agotado"
	default:
		return "error inesperado"
	}
}

// SanitizeValidationError reports the first failing field without echoing
// the submitted value.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "petición inválida"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("campo %s inválido: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "campo obligatorio"
	case "min":
		return "demasiado corto"
	case "max":
		return "demasiado largo"
	case "oneof":
		return "valor no permitido"
	default:
		return "validación fallida"
	}
}

// HandleAPIError writes the failed envelope for err. prefix names the
// operation, e.g. "Error al analizar texto".
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	message := GetSafeErrorMessage(err)
	if prefix != "" {
		message = prefix + ": " + message
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}
