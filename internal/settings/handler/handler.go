package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mirellenails/salon-backend/internal/apperror"
	"github.com/mirellenails/salon-backend/internal/handlers"
	"github.com/mirellenails/salon-backend/internal/settings"
	"github.com/mirellenails/salon-backend/internal/settings/store"
	"go.uber.org/zap"
)

type handler struct {
	store          *store.Store
	authMiddleware func(http.Handler) http.Handler
	logger         *zap.Logger
}

func New(store *store.Store, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) handlers.Handler {
	return &handler{
		store:          store,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/settings", func(settingsRouter chi.Router) {
		settingsRouter.Get("/", apperror.Middleware(h.getSettingsHandler))
		settingsRouter.Get("/events", h.eventsHandler)
	})

	router.Get("/gallery", apperror.Middleware(h.getGalleryHandler))
	router.Get("/promotions", apperror.Middleware(h.getPromotionsHandler))

	router.Route("/admin/settings", func(adminRouter chi.Router) {
		adminRouter.Use(h.authMiddleware)

		adminRouter.Put("/", apperror.Middleware(h.updateSettingsHandler))
		adminRouter.Post("/reset", apperror.Middleware(h.resetSettingsHandler))
	})
}

// @Tags		settings
// @Success	200	{object}	settings.SiteSettings
// @Router		/settings [get]
func (h *handler) getSettingsHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, h.store.Snapshot())

	return nil
}

// @Tags		gallery
// @Success	200	{object}	GalleryResponse
// @Router		/gallery [get]
func (h *handler) getGalleryHandler(w http.ResponseWriter, r *http.Request) error {
	snapshot := h.store.Snapshot()

	render.JSON(w, r, NewGalleryResponse(snapshot.Gallery))

	return nil
}

// @Tags		promotions
// @Success	200	{object}	PromotionsResponse
// @Router		/promotions [get]
func (h *handler) getPromotionsHandler(w http.ResponseWriter, r *http.Request) error {
	snapshot := h.store.Snapshot()

	render.JSON(w, r, PromotionsResponse{
		Promotions: snapshot.Promotions.Active(time.Now()),
	})

	return nil
}

// @Security	ApiKeyAuth
// @Tags		settings
// @Param		request	body		settings.SiteSettings	true	"full settings document"
// @Success	200		{object}	settings.SiteSettings
// @Failure	400,500	{object}	apperror.AppError
// @Router		/admin/settings [put]
func (h *handler) updateSettingsHandler(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	// The merge heals whatever shape the admin client sent; unknown or
	// malformed fields fall back to defaults instead of failing the save.
	draft := h.store.BeginEdit()
	draft.Settings = settings.Merge(body)
	draft.Commit(r.Context())

	render.JSON(w, r, h.store.Snapshot())

	return nil
}

// @Security	ApiKeyAuth
// @Tags		settings
// @Success	200	{object}	settings.SiteSettings
// @Router		/admin/settings/reset [post]
func (h *handler) resetSettingsHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, h.store.Reset(r.Context()))

	return nil
}

// eventsHandler streams canonical-document changes as server-sent events.
// The current snapshot is sent immediately so a client never renders blind.
func (h *handler) eventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes, cancel := h.store.Subscribe()
	defer cancel()

	h.writeEvent(w, h.store.Snapshot())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case value, ok := <-changes:
			if !ok {
				return
			}

			h.writeEvent(w, value)
			flusher.Flush()
		}
	}
}

func (h *handler) writeEvent(w io.Writer, value settings.SiteSettings) {
	raw, err := json.Marshal(value)
	if err != nil {
		h.logger.Error("failed to marshal settings event", zap.Error(err))
		return
	}

	fmt.Fprintf(w, "event: settings\ndata: %s\n\n", raw)
}
