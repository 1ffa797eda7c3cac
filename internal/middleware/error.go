package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the envelope every endpoint returns: a success flag plus
// either a data payload or a human-readable message.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// RespondWithJSON sends a success envelope carrying data
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	respond(w, statusCode, Response{Success: true, Data: data})
}

// RespondWithJSONMessage sends a success envelope carrying data and a message
func RespondWithJSONMessage(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	respond(w, statusCode, Response{Success: true, Data: data, Message: message})
}

// RespondWithError sends a failure envelope with a message
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	respond(w, statusCode, Response{Success: false, Message: message})
}

// RespondWithValidationErrors sends a 400 failure envelope listing the
// failing fields.
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	respond(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "validation failed",
		Data:    map[string]interface{}{"validation_errors": errors},
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
