package transport

import (
	"net/http"

	"github.com/Gaurav-0801/E-com-Platform/internal/middleware"
	"github.com/Gaurav-0801/E-com-Platform/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the catalog
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
}

// List returns the whole catalog ordered by id ascending
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to load products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}
