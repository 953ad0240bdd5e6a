package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/tasksift/internal/api/shared"
	"github.com/phrazzld/tasksift/internal/domain"
	"github.com/phrazzld/tasksift/internal/export"
)

// decodeRequest reads and validates the JSON body into v.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.Is(err, shared.ErrEmptyBody) || errors.As(err, &maxBytesErr) || errors.Is(err, domain.ErrInvalidDate) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	if err := shared.ValidateRequest(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// formatFromQuery reads the optional ?format= export selector.
func formatFromQuery(r *http.Request) (export.Format, error) {
	return export.ParseFormat(r.URL.Query().Get("format"))
}
