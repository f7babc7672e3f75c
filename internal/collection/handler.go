package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/photovault/service/internal/response"
)

// Handler serves collection endpoints.
type Handler struct {
	log *zap.Logger
	svc *Service
}

// NewHandler creates a new collection Handler.
func NewHandler(log *zap.Logger, svc *Service) *Handler {
	return &Handler{log: log.Named("collection.http"), svc: svc}
}

// Register mounts the collection routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/collections/monthly", h.Monthly)
}

// Monthly godoc
//
//	@Summary		Monthly collections
//	@Description	Non-deleted photos grouped by creation month, newest month first. Months with fewer than the configured minimum (default 4) are omitted.
//	@Tags			collections
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Collection}
//	@Failure		500	{object}	response.Envelope
//	@Router			/collections/monthly [get]
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.Monthly(r.Context())
	if err != nil {
		h.log.Error("monthly collections failed", zap.Error(err))
		response.InternalError(w)
		return
	}

	response.OK(w, collections)
}
