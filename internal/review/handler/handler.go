package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mirellenails/salon-backend/internal/apperror"
	"github.com/mirellenails/salon-backend/internal/handlers"
	"github.com/mirellenails/salon-backend/internal/review"
	"go.uber.org/zap"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockreviewservice
type Service interface {
	Submit(ctx context.Context, input review.SubmitInput) (*review.SubmitResult, error)
	GetAll(ctx context.Context) ([]review.Review, error)
	Delete(ctx context.Context, id int) error
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	logger         *zap.Logger
}

func New(service Service, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/reviews", func(reviewRouter chi.Router) {
		reviewRouter.Get("/", apperror.Middleware(h.getReviewsHandler))
		reviewRouter.Post("/", apperror.Middleware(h.submitReviewHandler))
	})

	router.Route("/admin/reviews", func(adminRouter chi.Router) {
		adminRouter.Use(h.authMiddleware)

		adminRouter.Delete("/{id}", apperror.Middleware(h.deleteReviewHandler))
	})
}

// @Tags		reviews
// @Success	200	{object}	ReviewsResponse
// @Router		/reviews [get]
func (h *handler) getReviewsHandler(w http.ResponseWriter, r *http.Request) error {
	reviews, err := h.service.GetAll(r.Context())
	if err != nil {
		return err
	}

	render.JSON(w, r, ReviewsResponse{Reviews: reviews})

	return nil
}

// @Tags		reviews
// @Param		request	body		ReviewRequest	true	"request body"
// @Success	200		{object}	review.SubmitResult
// @Failure	400		{object}	review.SubmitResult
// @Failure	500		{object}	apperror.AppError
// @Router		/reviews [post]
func (h *handler) submitReviewHandler(w http.ResponseWriter, r *http.Request) error {
	var dto ReviewRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	result, err := h.service.Submit(r.Context(), dto.ToInput())
	if err != nil {
		return err
	}

	if !result.Success {
		render.Status(r, http.StatusBadRequest)
	}

	render.JSON(w, r, result)

	return nil
}

// @Security	ApiKeyAuth
// @Tags		reviews
// @Param		id	path	int	true	"review id"
// @Success	200
// @Failure	400,404,500	{object}	apperror.AppError
// @Router		/admin/reviews/{id} [delete]
func (h *handler) deleteReviewHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.NewAppError("invalid review id")
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		return err
	}

	render.JSON(w, r, struct{}{})

	return nil
}
