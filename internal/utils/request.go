package utils

import (
	"errors"
	"log/slog"
	"net/http"

	appErrors "github.com/stockbuddy07/styleswap/internal/errors"
	"github.com/stockbuddy07/styleswap/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, appErrors.ValidationError("Invalid input data").WithError(err))

		return false
	}

	return true
}

// ParseID reads a UUID path parameter registered under name on the request.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {

	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, appErrors.BadRequestError("Missing " + name + " parameter")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.BadRequestError("Invalid " + name + " format").WithError(err)
	}

	return id, nil
}
