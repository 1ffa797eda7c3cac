package transport

import (
	"errors"
	"net/http"

	"github.com/Gaurav-0801/E-com-Platform/internal/middleware"
	"github.com/Gaurav-0801/E-com-Platform/internal/repository"
	"github.com/Gaurav-0801/E-com-Platform/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// handleServiceError maps the service error taxonomy to HTTP: validation
// errors return 400 with their message verbatim, missing entities 404,
// unique violations 409, and everything else the safe fallback message
// with 500. Infrastructure detail never reaches the client.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	if ve, ok := service.AsValidationError(err); ok {
		middleware.RespondWithError(w, http.StatusBadRequest, ve.Error())
		return
	}

	if errors.Is(err, repository.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	if errors.Is(err, repository.ErrCartLineNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		middleware.RespondWithError(w, http.StatusConflict, "duplicate entry")
		return
	}

	logger.Error("Request failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
}
