package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/mirellenails/salon-backend/internal/apperror"
	"github.com/mirellenails/salon-backend/internal/auth"
	jwtauth "github.com/mirellenails/salon-backend/internal/auth/jwt"
	"github.com/mirellenails/salon-backend/internal/handlers"
	"go.uber.org/zap"
)

var validate = validator.New()

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockauthservice
type Service interface {
	Login(ctx context.Context, email string, password string) (string, error)
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	loginLimiter   func(http.Handler) http.Handler
	sessionTTL     time.Duration
	logger         *zap.Logger
}

func New(
	service Service,
	authMiddleware func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
	sessionTTL time.Duration,
	logger *zap.Logger,
) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		loginLimiter:   loginLimiter,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/auth", func(authRouter chi.Router) {
		authRouter.Group(func(loginRouter chi.Router) {
			loginRouter.Use(h.loginLimiter)

			loginRouter.Post("/login", apperror.Middleware(h.loginHandler))
		})

		authRouter.Get("/logout", apperror.Middleware(h.logoutHandler))

		authRouter.Group(func(privateRouter chi.Router) {
			privateRouter.Use(h.authMiddleware)

			privateRouter.Get("/me", apperror.Middleware(h.whoamiHandler))
		})
	})
}

func (h *handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtauth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// @Tags		auth
// @Param		request	body		auth.LoginRequest	true	"request body"
// @Success	200		{object}	auth.AdminResponse
// @Failure	400,500	{object}	apperror.AppError
// @Router		/auth/login [post]
func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.LoginRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	token, err := h.service.Login(r.Context(), dto.Email, dto.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(w, token)

	render.JSON(w, r, auth.AdminResponse{Email: dto.Email})

	return nil
}

// @Tags		auth
// @Success	200
// @Router		/auth/logout [get]
func (h *handler) logoutHandler(w http.ResponseWriter, r *http.Request) error {
	jwtauth.ClearSessionCookie(w)

	render.JSON(w, r, struct{}{})

	return nil
}

// @Security	ApiKeyAuth
// @Tags		auth
// @Success	200		{object}	auth.AdminResponse
// @Failure	401		{object}	apperror.AppError
// @Router		/auth/me [get]
func (h *handler) whoamiHandler(w http.ResponseWriter, r *http.Request) error {
	email, ok := r.Context().Value(jwtauth.EmailContextKey{}).(string)
	if !ok {
		return apperror.ErrUnauthorized
	}

	render.JSON(w, r, auth.AdminResponse{Email: email})

	return nil
}
