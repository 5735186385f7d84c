package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loczu/storefront/internal/logging"
	"github.com/loczu/storefront/internal/session"
)

type AuthHTTP struct {
	Session *session.Manager
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Session.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrValidation):
			l.Warn("login_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, session.ErrRequestInFlight):
			l.Warn("login_error", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, echo.Map{"error": "login already in progress"})
		case errors.Is(err, session.ErrRejected):
			l.Warn("login_error", "status", 401, "error", err)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		default:
			l.Error("login_error", "status", 502, "error", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "account service unavailable"})
		}
	}

	l.Info("login successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": h.Session.Token()})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req session.RegisterProfile
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Session.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, session.ErrRequestInFlight):
			l.Warn("register_error", "status", 409, "error", err)
			return c.JSON(http.StatusConflict, echo.Map{"error": "registration already in progress"})
		case errors.Is(err, session.ErrRejected):
			l.Warn("register_error", "status", 422, "error", err)
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		default:
			l.Error("register_error", "status", 502, "error", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "account service unavailable"})
		}
	}

	l.Info("registration successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": h.Session.Token()})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	h.Session.Logout(ctx)

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user := h.Session.CurrentUser()
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, user)
}
