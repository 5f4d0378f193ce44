package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/api/metrics"
	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue audit events.
type EventDispatcher interface {
	Enqueue(event ports.SessionEventInput)
}

// SignOuter ends the session and tells where the requester goes next.
type SignOuter interface {
	SignOut(ctx context.Context, currentPath string) (domain.Admission, error)
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	shell       SignOuter
	events      EventDispatcher
	log         zerolog.Logger
}

func NewAuthHandler(
	authService ports.AuthService,
	sessions ports.SessionStore,
	shell SignOuter,
	events EventDispatcher,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		shell:       shell,
		events:      events,
		log:         log,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

type forgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
}

type sessionResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.SessionTransitionsTotal.WithLabelValues("login", "error").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	if err := h.bind(ctx, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user, Redirect: domain.HomePath})
}

// Register creates an account. A guest registering is signed in right
// away; only a signed-in admin may create other admins.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	current := h.sessions.Current()
	if req.Role == string(domain.RoleAdmin) && (current == nil || current.Role != domain.RoleAdmin) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: "only an admin can create admin accounts"})
	}

	ctx := c.Request().Context()
	account, err := h.authService.Register(ctx, req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		metrics.SessionTransitionsTotal.WithLabelValues("register", "error").Inc()
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}
	metrics.SessionTransitionsTotal.WithLabelValues("register", "ok").Inc()

	user := account.Principal()
	if current != nil {
		return c.JSON(http.StatusCreated, sessionResponse{User: user})
	}
	if err := h.bind(ctx, user); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{User: user, Redirect: domain.HomePath})
}

// ForgotPassword acknowledges a recovery request without revealing whether
// the account exists.
//
// @Summary      Request password recovery
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account"
// @Success      202   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	h.log.Info().Str("username", req.Username).Msg("password recovery requested")
	return c.JSON(http.StatusAccepted, messageResponse{
		Message: "if the account exists, recovery instructions have been sent",
	})
}

// Logout ends the session and redirects to wherever the guard now sends
// the requester. The optional "from" query parameter names the page the
// sign-out was triggered from.
//
// @Summary      Sign out
// @Tags         auth
// @Param        from  query  string  false  "Current page path"
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	from := c.QueryParam("from")
	if from == "" {
		from = domain.HomePath
	}

	previous := h.sessions.Current()
	adm, err := h.shell.SignOut(c.Request().Context(), from)
	if err != nil {
		metrics.SessionTransitionsTotal.WithLabelValues("logout", "error").Inc()
		return err
	}
	metrics.SessionTransitionsTotal.WithLabelValues("logout", "ok").Inc()
	metrics.SessionActive.Set(0)

	if previous != nil {
		h.events.Enqueue(ports.SessionEventInput{
			UserID:   previous.ID,
			UserName: previous.Name,
			Kind:     string(domain.SessionLogout),
			At:       time.Now().UTC(),
		})
	}
	return c.Redirect(http.StatusSeeOther, adm.Location())
}

// Session reports the current user, or null when signed out.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{User: h.sessions.Current()})
}

// bind makes user the session principal and records the transition.
func (h *AuthHandler) bind(ctx context.Context, user *domain.User) error {
	if err := h.sessions.Login(ctx, user); err != nil {
		metrics.SessionTransitionsTotal.WithLabelValues("login", "error").Inc()
		return err
	}
	metrics.SessionTransitionsTotal.WithLabelValues("login", "ok").Inc()
	metrics.SessionActive.Set(1)

	h.events.Enqueue(ports.SessionEventInput{
		UserID:   user.ID,
		UserName: user.Name,
		Kind:     string(domain.SessionLogin),
		At:       time.Now().UTC(),
	})
	return nil
}
