package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

type AuthHTTP struct {
	Svc           *service.AuthService
	SecureCookies bool
}

func (h *AuthHTTP) register(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", "auth.register", "kind", kind)

		var req transport.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return badBody(l, "register_error", err)
		}

		if err := h.Svc.Register(ctx, kind, req); err != nil {
			if errors.Is(err, service.ErrConflict) {
				l.Warn("register_error", "status", http.StatusBadRequest, "reason", "account already exists")
				return echo.NewHTTPError(http.StatusBadRequest, "Account already exists")
			}
			return fail(l, "register_error", err, "", "Server Error")
		}

		l.Info("register_success")
		msg := "Admin Registered Successfully"
		if kind == tokens.RoleCustomer {
			msg = "Customer Registered Successfully"
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": msg})
	}
}

func (h *AuthHTTP) login(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", "auth.login", "kind", kind)

		var req transport.LoginRequest
		if err := c.Bind(&req); err != nil {
			return badBody(l, "login_error", err)
		}

		res, err := h.Svc.Login(ctx, kind, req.Email, req.Password)
		if err != nil {
			return fail(l, "login_error", err, "", "Server Error")
		}

		c.SetCookie(&http.Cookie{
			Name:     "accessToken",
			Value:    res.Token,
			Path:     "/",
			Expires:  res.ExpiresAt,
			MaxAge:   int(time.Until(res.ExpiresAt).Seconds()),
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		l.Info("login_success")
		return c.JSON(http.StatusOK, transport.LoginResponse{
			Message: "Login Successful",
			Token:   res.Token,
			User: transport.UserResponse{
				Name:  res.Name,
				Email: res.Email,
				Role:  res.Role,
			},
		})
	}
}
